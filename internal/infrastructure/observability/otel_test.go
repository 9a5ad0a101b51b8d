package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/product-search-api/internal/config"
)

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("api-key=abc, x-tenant = jan ,broken,=empty,novalue=")
	assert.Equal(t, map[string]string{"api-key": "abc", "x-tenant": "jan"}, headers)
	assert.Empty(t, parseHeaders(""))
}

func TestSetupWithoutExporter(t *testing.T) {
	cfg := &config.Config{ServiceName: "product-search-api", ServiceNamespace: "jan", Environment: "test"}

	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := StartUpstreamSpan(context.Background(), "search", "get")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
