package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	domain "github.com/janhq/product-search-api/internal/domain/productsearch"
	"github.com/janhq/product-search-api/internal/infrastructure/metrics"
	"github.com/janhq/product-search-api/internal/infrastructure/observability"
	"github.com/janhq/product-search-api/internal/infrastructure/resilience"
	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

// ProviderName labels metrics, spans and breaker state for the generation API.
const ProviderName = "generation"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "Jan-Product-Search/1.0"
	maxErrorBodySize = 512
)

var (
	errNoChoices         = errors.New("generation response contained no choices")
	errMalformedResponse = errors.New("generation response is not a chat completion")
)

// ClientConfig configures the OpenAI-compatible chat completions client.
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float32
	MaxTokens      int
	Timeout        time.Duration
	UserAgent      string
	Retry          resilience.RetryConfig
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client implements domain.Generator with a single non-streaming chat completion.
type Client struct {
	cfg         ClientConfig
	http        *resty.Client
	baseURL     string
	retryConfig resilience.RetryConfig
	breaker     *resilience.CircuitBreaker
}

var _ domain.Generator = (*Client)(nil)

// NewClient builds the generation client.
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
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{
		cfg:         cfg,
		http:        httpClient,
		baseURL:     normalizeBaseURL(cfg.BaseURL),
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

// Generate requests one completion and returns the first choice's message content.
func (c *Client) Generate(ctx context.Context, messages []domain.Message) (string, error) {
	ctx, span := observability.StartUpstreamSpan(ctx, ProviderName, "chat_completion")
	defer span.End()

	request := c.buildRequest(messages)

	content, err := resilience.Execute(c.breaker, func() (string, error) {
		return resilience.WithRetry(ctx, c.retryConfig, ProviderName, func(ctx context.Context, attempt int) (string, error) {
			if attempt > 1 {
				observability.AddRetryEvent(span, attempt, "transient upstream failure")
			}
			return c.createChatCompletion(ctx, request)
		})
	})
	if err != nil {
		mapped := mapError(ctx, err)
		observability.RecordError(span, err, string(mapped.Type))
		return "", mapped
	}
	return content, nil
}

func (c *Client) buildRequest(messages []domain.Message) openai.ChatCompletionRequest {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    chatMessages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		N:           1,
	}
}

func (c *Client) createChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (string, error) {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.RecordUpstreamCall(ProviderName, status, time.Since(start).Seconds())
	}()

	resp, err := c.prepareRequest(ctx).
		SetBody(request).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		log.Debug().Err(err).Str("provider", ProviderName).Msg("chat completion request failed")
		return "", err
	}
	status = strconv.Itoa(resp.StatusCode())

	if resp.IsError() {
		return "", errorFromResponse(resp)
	}

	var completion openai.ChatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", fmt.Errorf("%w: %v", errMalformedResponse, err)
	}

	metrics.RecordGenerationTokens(request.Model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)

	if len(completion.Choices) == 0 {
		return "", errNoChoices
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.cfg.APIKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.cfg.APIKey))
	}
	return req
}

func (c *Client) endpoint(path string) string {
	if c.baseURL == "" {
		return path
	}
	return c.baseURL + path
}

// errorFromResponse prefers the OpenAI error message over the raw body.
func errorFromResponse(resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())

	var apiErr openai.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error != nil && apiErr.Error.Message != "" {
		body = apiErr.Error.Message
	}
	if len(body) > maxErrorBodySize {
		body = body[:maxErrorBodySize]
	}

	return &resilience.StatusError{
		Provider:   ProviderName,
		StatusCode: resp.StatusCode(),
		Body:       body,
	}
}

func mapError(ctx context.Context, err error) *platformerrors.PlatformError {
	var statusErr *resilience.StatusError
	switch {
	case errors.As(err, &statusErr), errors.Is(err, errNoChoices), errors.Is(err, errMalformedResponse):
		return domain.NewUpstreamError(ctx, domain.ErrGenerationFailed, ProviderName, err)
	case resilience.IsTimeout(err):
		return domain.NewUpstreamError(ctx, domain.ErrUpstreamTimeout, ProviderName, err)
	default:
		return domain.NewUpstreamError(ctx, domain.ErrUpstreamUnavailable, ProviderName, err)
	}
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
