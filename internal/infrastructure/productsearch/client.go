package productsearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	domain "github.com/janhq/product-search-api/internal/domain/productsearch"
	"github.com/janhq/product-search-api/internal/infrastructure/metrics"
	"github.com/janhq/product-search-api/internal/infrastructure/observability"
	"github.com/janhq/product-search-api/internal/infrastructure/resilience"
	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

// ProviderName labels metrics, spans and breaker state for the search API.
const ProviderName = "product_search"

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "Jan-Product-Search/1.0"
	maxErrorBodySize = 512
)

var errInvalidPayload = errors.New("search response is not valid JSON")

// ClientConfig captures the knobs exposed to operators for the search client.
type ClientConfig struct {
	Endpoint       string
	APIKey         string
	Timeout        time.Duration
	UserAgent      string
	Retry          resilience.RetryConfig
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements domain.SearchClient against the product search HTTP API.
type Client struct {
	cfg         ClientConfig
	http        *resty.Client
	retryConfig resilience.RetryConfig
	breaker     *resilience.CircuitBreaker
}

var _ domain.SearchClient = (*Client)(nil)

// NewClient builds the search client. Resty's own retries are disabled; retries go through resilience.WithRetry.
func NewClient(cfg ClientConfig) *Client {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{
		cfg:         cfg,
		http:        httpClient,
		retryConfig: cfg.Retry,
		breaker:     resilience.NewCircuitBreaker(ProviderName, cfg.CircuitBreaker),
	}
}

// Provider names the upstream in readiness reports.
func (c *Client) Provider() string {
	return ProviderName
}

// BreakerState reports the circuit breaker state for readiness checks.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// Search issues GET <endpoint>?query=<query>. Any status other than 200 is a search failure.
func (c *Client) Search(ctx context.Context, query string) (*domain.SearchPayload, error) {
	ctx, span := observability.StartUpstreamSpan(ctx, ProviderName, "search")
	defer span.End()

	payload, err := resilience.Execute(c.breaker, func() (*domain.SearchPayload, error) {
		return resilience.WithRetry(ctx, c.retryConfig, ProviderName, func(ctx context.Context, attempt int) (*domain.SearchPayload, error) {
			if attempt > 1 {
				observability.AddRetryEvent(span, attempt, "transient upstream failure")
			}
			return c.fetch(ctx, query)
		})
	})
	if err != nil {
		mapped := mapError(ctx, err)
		observability.RecordError(span, err, string(mapped.Type))
		return nil, mapped
	}

	metrics.RecordSearchPayload(len(payload.Raw))
	return payload, nil
}

func (c *Client) fetch(ctx context.Context, query string) (*domain.SearchPayload, error) {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.RecordUpstreamCall(ProviderName, status, time.Since(start).Seconds())
	}()

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.APIKey).
		SetQueryParam("query", query).
		Get(c.cfg.Endpoint)
	if err != nil {
		err = withoutQuery(err, c.cfg.Endpoint)
		log.Debug().Err(err).Str("provider", ProviderName).Msg("search request failed")
		return nil, err
	}
	status = strconv.Itoa(resp.StatusCode())

	if resp.StatusCode() != http.StatusOK {
		return nil, &resilience.StatusError{
			Provider:   ProviderName,
			StatusCode: resp.StatusCode(),
			Body:       truncate(resp.String(), maxErrorBodySize),
		}
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, errInvalidPayload
	}

	raw := make(json.RawMessage, len(body))
	copy(raw, body)
	return &domain.SearchPayload{Raw: raw}, nil
}

func mapError(ctx context.Context, err error) *platformerrors.PlatformError {
	var statusErr *resilience.StatusError
	switch {
	case errors.As(err, &statusErr), errors.Is(err, errInvalidPayload):
		return domain.NewUpstreamError(ctx, domain.ErrSearchFailed, ProviderName, err)
	case resilience.IsTimeout(err):
		return domain.NewUpstreamError(ctx, domain.ErrUpstreamTimeout, ProviderName, err)
	default:
		return domain.NewUpstreamError(ctx, domain.ErrUpstreamUnavailable, ProviderName, err)
	}
}

// withoutQuery replaces the request URL in transport errors with the bare endpoint so the
// shopper's query never reaches logs or spans through an error string.
func withoutQuery(err error, endpoint string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: endpoint, Err: urlErr.Err}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
