package facts

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/rs/zerolog"
)

// mockHTTPClient for testing
type mockHTTPClient struct {
	response *http.Response
	err      error
	requests []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return m.response, m.err
}

// mockURLResolver for testing
type mockURLResolver struct {
	url string
	err error
}

func (m *mockURLResolver) ResolveURL(query Query) (string, error) {
	return m.url, m.err
}

// mockResponseHandler for testing
type mockResponseHandler struct {
	text string
	err  error
}

func (m *mockResponseHandler) HandleResponse(resp *http.Response, targetURL string) (string, error) {
	return m.text, m.err
}

type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}

func okResponse() *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "text/plain; charset=utf-8")
	return &http.Response{StatusCode: 200, Body: http.NoBody, Header: header}
}

func TestFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name          string
		mockResponse  *http.Response
		mockError     error
		resolveURL    string
		resolveError  error
		handlerError  error
		expectedError errors.ErrorType
		expectedCalls int
	}{
		{
			name:          "successful fetch",
			mockResponse:  okResponse(),
			resolveURL:    "http://numbersapi.com/42/trivia",
			expectedCalls: 1,
		},
		{
			name:          "URL resolution failure",
			resolveError:  errors.New(errors.ErrorTypeConfig, "no base"),
			expectedError: errors.ErrorTypeConfig,
		},
		{
			name:          "transport failure",
			mockError:     &mockError{msg: "connection refused"},
			resolveURL:    "http://numbersapi.com/42/trivia",
			expectedError: errors.ErrorTypeNetwork,
			expectedCalls: 1,
		},
		{
			name:          "response handling failure",
			mockResponse:  okResponse(),
			resolveURL:    "http://numbersapi.com/42/trivia",
			handlerError:  errors.New(errors.ErrorTypeUpstream, "bad status"),
			expectedError: errors.ErrorTypeUpstream,
			expectedCalls: 1,
		},
		{
			name:          "stray percent is still dispatched",
			mockResponse:  okResponse(),
			resolveURL:    "http://numbersapi.com/%zz/trivia",
			expectedCalls: 1,
		},
		{
			name:          "control characters are still dispatched",
			mockResponse:  okResponse(),
			resolveURL:    "http://numbersapi.com/a\x01b/trivia",
			expectedCalls: 1,
		},
		{
			name:          "unparseable host",
			resolveURL:    "http://[::1/42/trivia",
			expectedError: errors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockHTTPClient{response: tt.mockResponse, err: tt.mockError}
			fetcher := NewFetcherWithDependencies(
				zerolog.Nop(),
				client,
				&mockURLResolver{url: tt.resolveURL, err: tt.resolveError},
				&mockResponseHandler{text: "42 is a number.", err: tt.handlerError},
				0,
			)

			fact, err := fetcher.Fetch(context.Background(), Query{Number: "42", Type: "trivia"})

			if len(client.requests) != tt.expectedCalls {
				t.Errorf("expected %d HTTP calls, got %d", tt.expectedCalls, len(client.requests))
			}

			if tt.expectedError != "" {
				if !errors.IsType(err, tt.expectedError) {
					t.Fatalf("expected %s error, got %v", tt.expectedError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fact.Text != "42 is a number." {
				t.Errorf("Text = %q", fact.Text)
			}
			if fact.URL != tt.resolveURL {
				t.Errorf("URL = %q, expected %q", fact.URL, tt.resolveURL)
			}
			if fact.ContentType != "text/plain; charset=utf-8" {
				t.Errorf("ContentType = %q", fact.ContentType)
			}

			req := client.requests[0]
			if req.Method != http.MethodGet {
				t.Errorf("method = %s, expected GET", req.Method)
			}
			if req.Body != nil && req.Body != http.NoBody {
				t.Errorf("expected no request body")
			}
		})
	}
}

func TestFetcher_Timeout(t *testing.T) {
	client := &mockHTTPClient{response: okResponse()}
	fetcher := NewFetcherWithDependencies(
		zerolog.Nop(),
		client,
		&mockURLResolver{url: "http://numbersapi.com/1/math"},
		&mockResponseHandler{},
		5*time.Second,
	)

	if _, err := fetcher.Fetch(context.Background(), Query{Number: "1", Type: "math"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := client.requests[0].Context().Deadline(); !ok {
		t.Errorf("expected request context to carry a deadline")
	}
}

func TestFetcher_NoTimeoutKeepsCallerDeadline(t *testing.T) {
	client := &mockHTTPClient{response: okResponse()}
	fetcher := NewFetcherWithDependencies(
		zerolog.Nop(),
		client,
		&mockURLResolver{url: "http://numbersapi.com/1/math"},
		&mockResponseHandler{},
		0,
	)

	if _, err := fetcher.Fetch(context.Background(), Query{Number: "1", Type: "math"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := client.requests[0].Context().Deadline(); ok {
		t.Errorf("expected no deadline without a configured timeout")
	}
}
