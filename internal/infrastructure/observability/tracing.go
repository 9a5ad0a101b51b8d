package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "jan-server/product-search-api"
)

// GetTracer returns the tracer for the product search service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartUpstreamSpan starts a client span around a call to an upstream provider.
func StartUpstreamSpan(ctx context.Context, provider, operation string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, provider+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("upstream.provider", provider)),
	)
}

// StartSearchSpan starts the span wrapping one search-and-summarize call.
func StartSearchSpan(ctx context.Context, sanitizedQuery string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "product_search.search_and_summarize",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("product_search.query", sanitizedQuery)),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error, category string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.category", category))
}

// AddRetryEvent adds a retry event to a span.
func AddRetryEvent(span trace.Span, attempt int, reason string) {
	span.AddEvent("retry",
		trace.WithAttributes(
			attribute.Int("retry.attempt", attempt),
			attribute.String("retry.reason", reason),
		),
	)
}
