package testutil

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockHTTPClient is a canned HTTP client that tracks the requests it receives
type MockHTTPClient struct {
	Response *http.Response
	Error    error

	mu       sync.Mutex
	Requests []*http.Request
}

// Do implements the HTTPClientProvider interface
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	return m.Response, m.Error
}

// NewMockHTTPClient creates a mock HTTP client with the given response and error
func NewMockHTTPClient(body string, statusCode int, headers map[string]string, err error) *MockHTTPClient {
	var resp *http.Response
	if err == nil {
		resp = &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}

		for key, value := range headers {
			resp.Header.Set(key, value)
		}
	}

	return &MockHTTPClient{
		Response: resp,
		Error:    err,
		Requests: make([]*http.Request, 0),
	}
}

// LastRequest returns the most recent request, or nil
func (m *MockHTTPClient) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}

// errReader fails every read
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

// NewFailingBodyClient returns a client whose response body errors on read
func NewFailingBodyClient(statusCode int, err error) *MockHTTPClient {
	return &MockHTTPClient{
		Response: &http.Response{
			StatusCode: statusCode,
			Body:       io.NopCloser(errReader{err: err}),
			Header:     make(http.Header),
		},
	}
}
