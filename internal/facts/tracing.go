package facts

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/brendan.keane/numberfacts/internal/facts"

// tracedFetcher records one span per fetch on the global tracer provider
type tracedFetcher struct {
	next Fetcher
}

// WithTracing wraps next so every Fetch is recorded as a client span
func WithTracing(next Fetcher) Fetcher {
	return &tracedFetcher{next: next}
}

func (t *tracedFetcher) Fetch(ctx context.Context, query Query) (*Fact, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "trivia.fetch")
	defer span.End()

	span.SetAttributes(
		attribute.String("numberfacts.number", query.Number),
		attribute.String("numberfacts.type", query.Type),
	)

	fact, err := t.next.Fetch(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("http.url", fact.URL),
		attribute.Int("http.status_code", fact.StatusCode),
	)
	return fact, nil
}
