package handlers

import (
	"github.com/rs/zerolog"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/domain/productsearch"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Search *SearchHandler
	Health *HealthHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(cfg *config.Config, searchService *productsearch.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Search: NewSearchHandler(searchService, cfg.SearchFailureStatus, log),
		Health: NewHealthHandler(searchService),
	}
}
