package testutil

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// TriviaServer is a stand-in for the trivia API that records every path it serves
type TriviaServer struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
}

// NewTriviaTestServer answers GET /{number}/{type} with "{number} is a number."
// as text/plain, like the real API does for its default format.
func NewTriviaTestServer() *TriviaServer {
	ts := &TriviaServer{}

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.record(r.URL.Path)

		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		segments := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(segments[0] + " is a number."))
	}))

	return ts
}

// NewFixedTestServer always answers with the given status, content type and body
func NewFixedTestServer(status int, contentType, body string) *TriviaServer {
	ts := &TriviaServer{}

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.record(r.URL.Path)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))

	return ts
}

func (ts *TriviaServer) record(path string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.paths = append(ts.paths, path)
}

// Paths returns the request paths served so far
func (ts *TriviaServer) Paths() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.paths...)
}

// BaseURL returns the server URL with a trailing slash
func (ts *TriviaServer) BaseURL() string {
	return ts.URL + "/"
}

// RefusedURL returns a base URL on which nothing is listening
func RefusedURL() string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "http://127.0.0.1:1/"
	}
	addr := l.Addr().String()
	l.Close()
	return "http://" + addr + "/"
}
