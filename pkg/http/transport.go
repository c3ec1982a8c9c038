package http

import (
	"net/http"
	"time"
)

// Transport implements http.RoundTripper with Lambda support
type Transport struct {
	*Client
}

// NewTransport creates a transport that routes through client
func NewTransport(client *Client) *Transport {
	return &Transport{Client: client}
}

// RoundTrip implements the http.RoundTripper interface
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.Do(req)
}

// NewHTTPClient returns a standard *http.Client whose requests route
// through client, so callers get http.Client timeouts on Lambda calls too
func NewHTTPClient(client *Client, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewTransport(client),
		Timeout:   timeout,
	}
}
