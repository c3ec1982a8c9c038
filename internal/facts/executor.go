package facts

import (
	"context"
	"net/http"
	"time"

	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/rs/zerolog"
)

// fetcher implements Fetcher with injected dependencies
type fetcher struct {
	logger          zerolog.Logger
	httpClient      HTTPClientProvider
	urlResolver     URLResolver
	responseHandler ResponseHandler
	timeout         time.Duration
}

// NewFetcherWithDependencies creates a Fetcher from its parts.
// A zero timeout leaves the deadline to ctx.
func NewFetcherWithDependencies(
	logger zerolog.Logger,
	httpClient HTTPClientProvider,
	urlResolver URLResolver,
	responseHandler ResponseHandler,
	timeout time.Duration,
) Fetcher {
	return &fetcher{
		logger:          logger,
		httpClient:      httpClient,
		urlResolver:     urlResolver,
		responseHandler: responseHandler,
		timeout:         timeout,
	}
}

// Fetch issues exactly one GET for query. There is no retry.
func (f *fetcher) Fetch(ctx context.Context, query Query) (*Fact, error) {
	logger := f.logger.With().
		Str("number", query.Number).
		Str("type", query.Type).
		Logger()

	targetURL, err := f.urlResolver.ResolveURL(query)
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve target URL")
		return nil, err
	}

	logger.Debug().Str("target_url", targetURL).Msg("URL resolved")

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL(targetURL), nil)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build HTTP request")
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create HTTP request").
			WithContext("url", targetURL)
	}

	startTime := time.Now()
	resp, err := f.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("duration", duration).
			Msg("HTTP request failed")
		return nil, errors.Wrap(err, errors.ErrorTypeNetwork, "HTTP request failed").
			WithContext("url", targetURL).
			WithContext("duration", duration.String())
	}
	defer resp.Body.Close()

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("HTTP request completed")

	text, err := f.responseHandler.HandleResponse(resp, targetURL)
	if err != nil {
		return nil, err
	}

	return &Fact{
		URL:         targetURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Text:        text,
		Duration:    duration,
	}, nil
}
