package productsearch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

func TestNewUpstreamError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:9: connection refused")
	err := NewUpstreamError(context.Background(), ErrUpstreamUnavailable, "product_search", cause)

	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnavailable))
	assert.Equal(t, ErrUpstreamUnavailable.Error(), err.Message)
	assert.Equal(t, 1, strings.Count(err.Error(), ErrUpstreamUnavailable.Error()))
	assert.Contains(t, err.Error(), "product_search: dial tcp")
}

func TestNewUpstreamErrorWithoutCause(t *testing.T) {
	err := NewUpstreamError(context.Background(), ErrUpstreamTimeout, "generation", nil)

	assert.True(t, errors.Is(err, ErrUpstreamTimeout))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeTimeout))
	assert.Equal(t, 1, strings.Count(err.Error(), ErrUpstreamTimeout.Error()))
}
