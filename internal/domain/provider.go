package domain

import (
	"github.com/google/wire"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/domain/productsearch"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	ProvidePromptTemplate,
	productsearch.NewService,
)

// ProvidePromptTemplate loads the prompt override file when one is configured
func ProvidePromptTemplate(cfg *config.Config) (productsearch.PromptTemplate, error) {
	return productsearch.LoadPromptTemplate(cfg.PromptTemplateFile)
}
