//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/domain"
	"github.com/janhq/product-search-api/internal/infrastructure"
	"github.com/janhq/product-search-api/internal/interfaces"
)

func CreateApplication(cfg *config.Config, log zerolog.Logger) (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
