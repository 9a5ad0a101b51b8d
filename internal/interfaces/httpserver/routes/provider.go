package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/product-search-api/internal/interfaces/httpserver/handlers"
	v1 "github.com/janhq/product-search-api/internal/interfaces/httpserver/routes/v1"
)

// Provider coordinates all route registrations.
type Provider struct {
	handlers *handlers.Provider
	V1       *v1.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		handlers: handlerProvider,
		V1:       v1.NewRoutes(handlerProvider),
	}
}

// Register attaches all available routes to the gin engine.
// The unversioned path is the one existing clients call.
func (p *Provider) Register(engine *gin.Engine) {
	engine.GET("/search_product", p.handlers.Search.Search)
	p.V1.Register(engine)
}
