package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment driven configuration for the product search service.
type Config struct {
	// HTTP Server
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"product-search-api"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"jan"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPHost         string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort         int           `env:"HTTP_PORT" envDefault:"8000"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel         string        `env:"PRODUCT_SEARCH_LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"PRODUCT_SEARCH_LOG_FORMAT" envDefault:"json"` // json or console
	LogPIILevel      string        `env:"LOG_PII_LEVEL" envDefault:"hashed"`           // none, hashed or full
	LogPIISalt       string        `env:"LOG_PII_SALT"`
	CORSOrigins      []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost,http://localhost:3000,http://127.0.0.1"`

	// Telemetry
	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders   string `env:"OTEL_EXPORTER_OTLP_HEADERS"`

	// Product search upstream
	SearchEndpoint string        `env:"SEARCH_ENDPOINT" envDefault:"https://ikea-api.com/search"`
	SearchAPIKey   string        `env:"SEARCH_API_KEY"`
	SearchTimeout  time.Duration `env:"SEARCH_HTTP_TIMEOUT" envDefault:"15s"`
	// SearchFailureStatus is the HTTP status returned with the "Failed to fetch" body.
	// Set to 200 to keep the legacy behaviour where failures are only visible in the body.
	SearchFailureStatus int `env:"SEARCH_FAILURE_STATUS" envDefault:"502"`

	// Generation upstream (OpenAI compatible)
	GenerationBaseURL     string        `env:"GENERATION_BASE_URL" envDefault:"https://api.openai.com/v1"`
	GenerationAPIKey      string        `env:"GENERATION_API_KEY"`
	GenerationModel       string        `env:"GENERATION_MODEL" envDefault:"gpt-4"`
	GenerationTimeout     time.Duration `env:"GENERATION_HTTP_TIMEOUT" envDefault:"60s"`
	GenerationTemperature float32       `env:"GENERATION_TEMPERATURE" envDefault:"0"` // 0 keeps the provider default
	GenerationMaxTokens   int           `env:"GENERATION_MAX_TOKENS" envDefault:"0"`
	PromptTemplateFile    string        `env:"PROMPT_TEMPLATE_FILE"`

	// Retry Configuration (shared by both upstreams)
	RetryMaxAttempts   int           `env:"UPSTREAM_RETRY_MAX_ATTEMPTS" envDefault:"2"`
	RetryInitialDelay  time.Duration `env:"UPSTREAM_RETRY_INITIAL_DELAY" envDefault:"250ms"`
	RetryMaxDelay      time.Duration `env:"UPSTREAM_RETRY_MAX_DELAY" envDefault:"2s"`
	RetryBackoffFactor float64       `env:"UPSTREAM_RETRY_BACKOFF_FACTOR" envDefault:"1.5"`

	// Circuit Breaker Configuration
	CBEnabled          bool          `env:"UPSTREAM_CB_ENABLED" envDefault:"true"`
	CBFailureThreshold int           `env:"UPSTREAM_CB_FAILURE_THRESHOLD" envDefault:"15"`
	CBSuccessThreshold int           `env:"UPSTREAM_CB_SUCCESS_THRESHOLD" envDefault:"5"`
	CBTimeout          time.Duration `env:"UPSTREAM_CB_TIMEOUT" envDefault:"45s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(os.Getenv("PRODUCT_SEARCH_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("PRODUCT_SEARCH_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot.
func (c *Config) Validate() error {
	if _, err := parseAbsoluteURL(c.SearchEndpoint); err != nil {
		return fmt.Errorf("SEARCH_ENDPOINT: %w", err)
	}
	if _, err := parseAbsoluteURL(c.GenerationBaseURL); err != nil {
		return fmt.Errorf("GENERATION_BASE_URL: %w", err)
	}
	if strings.TrimSpace(c.GenerationModel) == "" {
		return fmt.Errorf("GENERATION_MODEL must not be empty")
	}
	if err := validateSearchFailureStatus(c.SearchFailureStatus); err != nil {
		return fmt.Errorf("SEARCH_FAILURE_STATUS: %w", err)
	}

	if c.RetryMaxAttempts <= 0 {
		c.RetryMaxAttempts = 1
	}
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = 15 * time.Second
	}
	if c.GenerationTimeout <= 0 {
		c.GenerationTimeout = 60 * time.Second
	}
	return nil
}

// envelopeStatuses are already returned with the platform error envelope.
var envelopeStatuses = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusInternalServerError: true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func validateSearchFailureStatus(status int) error {
	if status == http.StatusOK {
		return nil
	}
	if status < 400 || status > 599 || http.StatusText(status) == "" {
		return fmt.Errorf("%d must be 200 or a known 4xx/5xx status", status)
	}
	if envelopeStatuses[status] {
		return fmt.Errorf("%d is reserved for other error responses", status)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	return u, nil
}
