package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/product-search-api/internal/domain/productsearch"
	"github.com/janhq/product-search-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

// ProductSearchService is the domain operation behind GET /search_product.
type ProductSearchService interface {
	SearchProduct(ctx context.Context, query string) (*productsearch.Result, error)
}

// SearchHandler serves product search requests.
type SearchHandler struct {
	service       ProductSearchService
	failureStatus int
	log           zerolog.Logger
}

// NewSearchHandler creates a search handler. failureStatus is used for search API rejections.
func NewSearchHandler(service ProductSearchService, failureStatus int, log zerolog.Logger) *SearchHandler {
	if failureStatus != http.StatusOK && (failureStatus < 400 || http.StatusText(failureStatus) == "") {
		failureStatus = http.StatusBadGateway
	}
	return &SearchHandler{
		service:       service,
		failureStatus: failureStatus,
		log:           log.With().Str("handler", "search").Logger(),
	}
}

// Search handles GET /search_product?query=<text>.
func (h *SearchHandler) Search(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "query parameter is required")
		return
	}

	result, err := h.service.SearchProduct(c.Request.Context(), query)
	if err != nil {
		h.log.Debug().Err(err).Str("request_id", platformerrors.RequestIDFromContext(c.Request.Context())).Msg("search request failed")
		if errors.Is(err, productsearch.ErrSearchFailed) {
			responses.HandleSearchFailure(c, err, h.failureStatus, productsearch.SearchFailureMessage)
			return
		}
		responses.HandleError(c, err, errorMessage(err))
		return
	}

	c.JSON(http.StatusOK, responses.ProductSearchResponse{
		Query:    result.Query,
		Response: result.Response,
	})
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, productsearch.ErrEmptyQuery):
		return "query must not be empty"
	case errors.Is(err, productsearch.ErrUpstreamTimeout):
		return "upstream request timed out"
	case errors.Is(err, productsearch.ErrUpstreamUnavailable):
		return "upstream service unavailable"
	case errors.Is(err, productsearch.ErrGenerationFailed):
		return "failed to generate product summary"
	default:
		return "internal server error"
	}
}
