package facts

import (
	"net/http"

	"github.com/brendan.keane/numberfacts/internal/config"
	"github.com/rs/zerolog"
)

// ClientFactory centralizes Fetcher creation
type ClientFactory struct {
	logger zerolog.Logger
}

// NewClientFactory creates a new client factory
func NewClientFactory(logger zerolog.Logger) *ClientFactory {
	return &ClientFactory{
		logger: logger,
	}
}

// CreateFetcher creates a Fetcher backed by the process default HTTP client
func (f *ClientFactory) CreateFetcher(cfg *config.Config) Fetcher {
	return f.CreateFetcherWithCustomClient(cfg, http.DefaultClient)
}

// CreateFetcherWithCustomClient creates a Fetcher with a custom HTTP client
// When cfg.Tracing is set each fetch is recorded as a span.
func (f *ClientFactory) CreateFetcherWithCustomClient(cfg *config.Config, httpClient HTTPClientProvider) Fetcher {
	fetcher := NewFetcherWithDependencies(
		f.logger.With().Str("component", "trivia_client").Logger(),
		httpClient,
		NewURLResolver(cfg.BaseURL()),
		NewResponseHandler(f.logger),
		cfg.Timeout,
	)
	if cfg.Tracing {
		return WithTracing(fetcher)
	}
	return fetcher
}
