// Package forwarder implements the number fact Lambda handler: it reads
// number and type from the event body, fetches the matching fact and
// wraps it in a fixed envelope tagged with the host architecture.
package forwarder

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/brendan.keane/numberfacts/internal/facts"
	"github.com/brendan.keane/numberfacts/internal/logger"
	"github.com/brendan.keane/numberfacts/internal/platform"
	"github.com/rs/zerolog"
)

// Forwarder is immutable after New and safe for concurrent invocations
type Forwarder struct {
	fetcher facts.Fetcher
	logger  zerolog.Logger
	arch    string
}

// Option configures a Forwarder
type Option func(*Forwarder)

// WithArch overrides the reported architecture
func WithArch(arch string) Option {
	return func(f *Forwarder) {
		f.arch = arch
	}
}

// New creates a Forwarder that fetches through fetcher
func New(fetcher facts.Fetcher, log zerolog.Logger, opts ...Option) *Forwarder {
	f := &Forwarder{
		fetcher: fetcher,
		logger:  logger.ForComponent(log, "forwarder"),
		arch:    platform.Arch(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Arch returns the architecture reported in response bodies
func (f *Forwarder) Arch() string {
	return f.arch
}

// Handle serves one invocation. Any parse or upstream failure is returned
// as-is and no envelope is produced.
func (f *Forwarder) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (Response, error) {
	log := logger.ForInvocation(f.logger, ctx)

	log.Info().Str("arch", f.arch).Msg("running on")
	log.Info().
		Str("http_method", event.HTTPMethod).
		Str("path", event.Path).
		Str("body", event.Body).
		Msg("event received")

	query, err := ParseBody(event.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse event body")
		return Response{}, err
	}

	fact, err := f.fetcher.Fetch(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch fact")
		return Response{}, err
	}

	log.Info().
		Str("url", fact.URL).
		Int("status", fact.StatusCode).
		Str("content_type", fact.ContentType).
		Dur("duration", fact.Duration).
		Str("data", fact.Text).
		Msg("upstream response received")

	return NewResponse(Body(f.arch, fact.Text)), nil
}
