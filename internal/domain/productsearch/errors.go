package productsearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

// SearchFailureMessage is the body text clients see when the search API rejects a request.
const SearchFailureMessage = "Failed to fetch data from IKEA API"

var (
	ErrEmptyQuery          = errors.New("query must not be empty")
	ErrSearchFailed        = errors.New(SearchFailureMessage)
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrUpstreamTimeout     = errors.New("upstream request timed out")
	ErrGenerationFailed    = errors.New("generation service failed")
)

func errorTypeFor(kind error) platformerrors.ErrorType {
	switch {
	case errors.Is(kind, ErrEmptyQuery):
		return platformerrors.ErrorTypeValidation
	case errors.Is(kind, ErrSearchFailed):
		return platformerrors.ErrorTypeExternal
	case errors.Is(kind, ErrUpstreamUnavailable):
		return platformerrors.ErrorTypeUnavailable
	case errors.Is(kind, ErrUpstreamTimeout):
		return platformerrors.ErrorTypeTimeout
	default:
		return platformerrors.ErrorTypeInternal
	}
}

// upstreamError ties a provider failure to one of the package sentinels. Its text is the
// provider and cause only; the sentinel text is already the platform error message.
type upstreamError struct {
	kind     error
	provider string
	cause    error
}

func (e *upstreamError) Error() string {
	if e.cause == nil {
		return e.provider
	}
	return fmt.Sprintf("%s: %v", e.provider, e.cause)
}

func (e *upstreamError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// NewUpstreamError wraps cause with one of the package sentinels so callers can match
// it with errors.Is while still getting a typed platform error.
func NewUpstreamError(ctx context.Context, kind error, provider string, cause error) *platformerrors.PlatformError {
	return platformerrors.NewErrorWithContext(
		ctx,
		platformerrors.LayerInfrastructure,
		errorTypeFor(kind),
		kind.Error(),
		&upstreamError{kind: kind, provider: provider, cause: cause},
		"",
		map[string]any{"provider": provider},
	)
}
