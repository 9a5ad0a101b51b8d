package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/product-search-api/internal/infrastructure/logger"
	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

// ProductSearchResponse is the success body of GET /search_product.
type ProductSearchResponse struct {
	Query    string `json:"query" jsonschema:"description=The query exactly as received"`
	Response string `json:"response" jsonschema:"description=Assistant text generated from the search results"`
}

// SearchFailureResponse is the body returned when the product search API rejects a request.
// It has exactly one field so existing clients can keep checking for the error key.
type SearchFailureResponse struct {
	Error string `json:"error" jsonschema:"enum=Failed to fetch data from IKEA API"`
}

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code          string `json:"code"` // UUID from PlatformError
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError handles domain errors and returns appropriate HTTP responses.
// Errors without platform metadata are wrapped at the handler layer; 5xx errors are logged.
func HandleError(reqCtx *gin.Context, err error, message string) {
	_ = reqCtx.Error(err)

	var domainErr *platformerrors.PlatformError
	if !errors.As(err, &domainErr) {
		domainErr = platformerrors.AsError(reqCtx.Request.Context(), platformerrors.LayerHandler, err, message)
	}

	statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())
	if statusCode >= http.StatusInternalServerError {
		platformerrors.LogError(logger.GetLogger(), domainErr)
	}

	reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
		Code:          domainErr.GetUUID(),
		Error:         message,
		Message:       domainErr.Message,
		ErrorInstance: domainErr,
		RequestID:     domainErr.GetRequestID(),
	})
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string) {
	err := platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, "")
	HandleError(reqCtx, err, message)
}

// HandleSearchFailure writes the legacy search failure body with the configured status.
func HandleSearchFailure(reqCtx *gin.Context, err error, status int, message string) {
	_ = reqCtx.Error(err)
	reqCtx.AbortWithStatusJSON(status, SearchFailureResponse{Error: message})
}
