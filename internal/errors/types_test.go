package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFactsError(t *testing.T) {
	err := New(ErrorTypeValidation, "test error")
	if err.Type != ErrorTypeValidation {
		t.Errorf("Expected type %s, got %s", ErrorTypeValidation, err.Type)
	}
	if err.Message != "test error" {
		t.Errorf("Expected message 'test error', got '%s'", err.Message)
	}

	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrorTypeNetwork, "network issue")
	if wrapped.Cause != cause {
		t.Errorf("Expected cause to be preserved")
	}
	if wrapped.Type != ErrorTypeNetwork {
		t.Errorf("Expected type %s, got %s", ErrorTypeNetwork, wrapped.Type)
	}

	err.WithContext("field", "number")
	if err.Context["field"] != "number" {
		t.Errorf("Expected context to be set")
	}

	expected := "network issue: underlying error"
	if wrapped.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, wrapped.Error())
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeUpstream, "upstream error")

	if !IsType(err, ErrorTypeUpstream) {
		t.Errorf("Expected IsType to return true for correct type")
	}
	if IsType(err, ErrorTypeNetwork) {
		t.Errorf("Expected IsType to return false for incorrect type")
	}

	stdErr := fmt.Errorf("standard error")
	if IsType(stdErr, ErrorTypeUpstream) {
		t.Errorf("Expected IsType to return false for standard error")
	}

	// Wrapped by fmt.Errorf still resolves
	outer := fmt.Errorf("handler: %w", err)
	if !IsType(outer, ErrorTypeUpstream) {
		t.Errorf("Expected IsType to see through fmt.Errorf wrapping")
	}
}

func TestGetType(t *testing.T) {
	err := New(ErrorTypeConfig, "config error")
	if GetType(err) != ErrorTypeConfig {
		t.Errorf("Expected type %s, got %s", ErrorTypeConfig, GetType(err))
	}

	stdErr := fmt.Errorf("standard error")
	if GetType(stdErr) != ErrorTypeInternal {
		t.Errorf("Expected type %s for standard error, got %s", ErrorTypeInternal, GetType(stdErr))
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "upstream with status",
			err:      New(ErrorTypeUpstream, "trivia API returned an error").WithContext("status", 404),
			expected: "trivia API returned an error (status 404)",
		},
		{
			name:     "network with url",
			err:      New(ErrorTypeNetwork, "connection refused").WithContext("url", "http://numbersapi.com/1/math"),
			expected: "Network error accessing http://numbersapi.com/1/math: connection refused",
		},
		{
			name:     "config with key",
			err:      New(ErrorTypeConfig, "invalid duration").WithContext("key", "NUMBERFACTS_TIMEOUT"),
			expected: "Configuration error (NUMBERFACTS_TIMEOUT): invalid duration",
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("boom"),
			expected: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPresentError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	PresentError(logger, New(ErrorTypeUpstream, "trivia API returned an error").WithContext("status", 500))

	out := buf.String()
	if !strings.Contains(out, `"error_type":"upstream"`) {
		t.Errorf("expected error_type field, got %s", out)
	}
	if !strings.Contains(out, `"status":500`) {
		t.Errorf("expected status context field, got %s", out)
	}

	buf.Reset()
	PresentError(logger, nil)
	if buf.Len() != 0 {
		t.Errorf("expected nothing logged for nil error, got %s", buf.String())
	}
}

func TestDebugInfo(t *testing.T) {
	info := DebugInfo(Wrap(fmt.Errorf("eof"), ErrorTypeNetwork, "read failed"))
	if info["type"] != "network" {
		t.Errorf("type = %v, expected network", info["type"])
	}
	if info["cause"] != "eof" {
		t.Errorf("cause = %v, expected eof", info["cause"])
	}
}

func TestAs(t *testing.T) {
	inner := New(ErrorTypeNetwork, "connection refused")
	outer := fmt.Errorf("fetch: %w", fmt.Errorf("handler: %w", inner))

	fErr, ok := As(outer)
	if !ok || fErr != inner {
		t.Errorf("As() = %v, %v, expected the wrapped FactsError", fErr, ok)
	}

	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Errorf("As() found a FactsError in a plain error")
	}
	if _, ok := As(nil); ok {
		t.Errorf("As() found a FactsError in nil")
	}
}

func TestInvalidEvent(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := InvalidEvent(cause, "event body is not valid JSON")

	if err.Type != ErrorTypeValidation {
		t.Errorf("Type = %s, expected %s", err.Type, ErrorTypeValidation)
	}
	if err.Cause != cause {
		t.Errorf("expected cause to be preserved")
	}
	expected := "Invalid body: event body is not valid JSON: unexpected EOF"
	if got := UserMessage(err); got != expected {
		t.Errorf("UserMessage() = %q, expected %q", got, expected)
	}
}

func TestUpstreamStatus(t *testing.T) {
	body := bytes.Repeat([]byte("x"), MaxUpstreamBody*2)
	err := UpstreamStatus(503, "http://numbersapi.com/1/math", body)

	if err.Type != ErrorTypeUpstream {
		t.Errorf("Type = %s, expected %s", err.Type, ErrorTypeUpstream)
	}
	if err.Context["status"] != 503 {
		t.Errorf("status context = %v, expected 503", err.Context["status"])
	}
	if got := err.Context["body"].(string); len(got) != MaxUpstreamBody {
		t.Errorf("body context length = %d, expected %d", len(got), MaxUpstreamBody)
	}
	if got := UserMessage(err); got != "trivia API returned an error (status 503)" {
		t.Errorf("UserMessage() = %q", got)
	}
}
