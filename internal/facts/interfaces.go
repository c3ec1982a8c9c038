package facts

import (
	"context"
	"net/http"
)

// Fetcher retrieves one fact from the trivia API
type Fetcher interface {
	Fetch(ctx context.Context, query Query) (*Fact, error)
}

// URLResolver builds the outbound URL for a query
type URLResolver interface {
	ResolveURL(query Query) (string, error)
}

// ResponseHandler turns an upstream response into the fact text
type ResponseHandler interface {
	HandleResponse(resp *http.Response, targetURL string) (string, error)
}

// HTTPClientProvider defines interface for the underlying HTTP client
// Enables testing with mock HTTP clients
type HTTPClientProvider interface {
	Do(req *http.Request) (*http.Response, error)
}
