package productsearch

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/product-search-api/internal/infrastructure/metrics"
	"github.com/janhq/product-search-api/internal/infrastructure/observability"
	"github.com/janhq/product-search-api/internal/infrastructure/telemetry"
	"github.com/janhq/product-search-api/internal/utils/platformerrors"
)

// Outcome labels recorded for every call
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidQuery     = "invalid_query"
	OutcomeSearchFailed     = "search_failed"
	OutcomeGenerationFailed = "generation_failed"
	OutcomeUnavailable      = "unavailable"
	OutcomeTimeout          = "timeout"
)

// Service runs one search-and-summarize call per request. It holds no per-request state.
type Service struct {
	search    SearchClient
	generator Generator
	prompt    PromptTemplate
	sanitizer *telemetry.Sanitizer
	logger    zerolog.Logger
}

// NewService constructs the product search service.
func NewService(search SearchClient, generator Generator, prompt PromptTemplate, sanitizer *telemetry.Sanitizer, logger zerolog.Logger) *Service {
	if sanitizer == nil {
		sanitizer = telemetry.NewSanitizer(telemetry.PIILevelHashed, "")
	}
	return &Service{
		search:    search,
		generator: generator,
		prompt:    prompt,
		sanitizer: sanitizer,
		logger:    logger.With().Str("component", "product-search-service").Logger(),
	}
}

// SearchProduct fetches product data for query and asks the generation service to rewrite it
// for a shopper. The generation service is never called when the search fails.
func (s *Service) SearchProduct(ctx context.Context, query string) (*Result, error) {
	safeQuery := s.sanitizer.SanitizeQuery(query)
	ctx, span := observability.StartSearchSpan(ctx, safeQuery)
	defer span.End()

	log := s.logger.With().
		Str("request_id", platformerrors.RequestIDFromContext(ctx)).
		Str("query", safeQuery).
		Logger()

	if strings.TrimSpace(query) == "" {
		err := platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			ErrEmptyQuery.Error(), ErrEmptyQuery, "")
		observability.RecordError(span, err, OutcomeInvalidQuery)
		metrics.RecordOutcome(OutcomeInvalidQuery)
		return nil, err
	}

	payload, err := s.search.Search(ctx, query)
	if err != nil {
		outcome := outcomeFor(err, OutcomeSearchFailed)
		observability.RecordError(span, err, outcome)
		metrics.RecordOutcome(outcome)
		log.Warn().Err(err).Str("outcome", outcome).Msg("product search failed")
		return nil, err
	}

	messages := s.prompt.Build(payload.Raw)

	content, err := s.generator.Generate(ctx, messages)
	if err != nil {
		outcome := outcomeFor(err, OutcomeGenerationFailed)
		observability.RecordError(span, err, outcome)
		metrics.RecordOutcome(outcome)
		log.Warn().Err(err).Str("outcome", outcome).Msg("summary generation failed")
		return nil, err
	}

	metrics.RecordOutcome(OutcomeSuccess)
	log.Debug().
		Int("payload_bytes", len(payload.Raw)).
		Str("response", s.sanitizer.SanitizeText(content)).
		Msg("product search completed")

	return &Result{Query: query, Response: content}, nil
}

// UpstreamStates returns the breaker state of every upstream client that reports one.
func (s *Service) UpstreamStates() map[string]string {
	states := make(map[string]string, 2)
	for _, upstream := range []any{s.search, s.generator} {
		if reporter, ok := upstream.(BreakerReporter); ok {
			states[reporter.Provider()] = reporter.BreakerState()
		}
	}
	return states
}

func outcomeFor(err error, fallback string) string {
	switch {
	case errors.Is(err, ErrUpstreamTimeout):
		return OutcomeTimeout
	case errors.Is(err, ErrUpstreamUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, ErrSearchFailed):
		return OutcomeSearchFailed
	case errors.Is(err, ErrGenerationFailed):
		return OutcomeGenerationFailed
	default:
		return fallback
	}
}
