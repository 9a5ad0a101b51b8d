package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/product-search-api/internal/interfaces/httpserver/handlers"
)

func registerSearchRoutes(router gin.IRoutes, handler *handlers.SearchHandler) {
	router.GET("/search_product", handler.Search)
}
