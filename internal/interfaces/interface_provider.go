package interfaces

import (
	"github.com/google/wire"

	"github.com/janhq/product-search-api/internal/interfaces/httpserver"
	"github.com/janhq/product-search-api/internal/interfaces/httpserver/handlers"
)

var InterfacesProvider = wire.NewSet(
	handlers.NewProvider,
	httpserver.NewHttpServer,
)
