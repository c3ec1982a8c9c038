package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// Custom assertion helpers to reduce boilerplate in tests

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: got error %v, expected none", msg, err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error, got none", msg)
	}
}

// AssertErrorContains fails the test if err is nil or doesn't contain the expected substring
func AssertErrorContains(t *testing.T, err error, expected string, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error containing %q, got none", msg, expected)
	}
	if !strings.Contains(err.Error(), expected) {
		t.Fatalf("%s: expected error containing %q, got %q", msg, expected, err.Error())
	}
}

// AssertEqual fails the test if got != expected
func AssertEqual(t *testing.T, got, expected interface{}, msg string) {
	t.Helper()
	if got != expected {
		t.Fatalf("%s: got %v, expected %v", msg, got, expected)
	}
}

// AssertStringEqual fails the test if got != expected (string-specific for cleaner output)
func AssertStringEqual(t *testing.T, got, expected string, msg string) {
	t.Helper()
	if got != expected {
		t.Fatalf("%s: got %q, expected %q", msg, got, expected)
	}
}

// AssertStringContains fails the test if str doesn't contain substring
func AssertStringContains(t *testing.T, str, substring string, msg string) {
	t.Helper()
	if !strings.Contains(str, substring) {
		t.Fatalf("%s: expected %q to contain %q", msg, str, substring)
	}
}

// AssertStringNotContains fails the test if str contains substring
func AssertStringNotContains(t *testing.T, str, substring string, msg string) {
	t.Helper()
	if strings.Contains(str, substring) {
		t.Fatalf("%s: expected %q to not contain %q", msg, str, substring)
	}
}

// AssertHeadersEqual fails the test unless got holds exactly the expected pairs
func AssertHeadersEqual(t *testing.T, got, expected map[string]string, msg string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("%s: got %d headers %v, expected %d %v", msg, len(got), got, len(expected), expected)
	}
	for key, value := range expected {
		if got[key] != value {
			t.Fatalf("%s: header %q: got %q, expected %q", msg, key, got[key], value)
		}
	}
}

// AssertNotJSON fails the test if s parses as JSON
func AssertNotJSON(t *testing.T, s string, msg string) {
	t.Helper()
	if json.Valid([]byte(s)) {
		t.Fatalf("%s: expected %q not to be valid JSON", msg, s)
	}
}

// AssertMethodEqual fails the test if the request method doesn't match expected
func AssertMethodEqual(t *testing.T, req *http.Request, expectedMethod string, msg string) {
	t.Helper()
	if req.Method != expectedMethod {
		t.Fatalf("%s: got method %q, expected %q", msg, req.Method, expectedMethod)
	}
}

// AssertPathEqual fails the test if the request path doesn't match expected
func AssertPathEqual(t *testing.T, req *http.Request, expectedPath string, msg string) {
	t.Helper()
	if req.URL.Path != expectedPath {
		t.Fatalf("%s: got path %q, expected %q", msg, req.URL.Path, expectedPath)
	}
}

// AssertMockCalled fails the test if the mock wasn't called the expected number of times
func AssertMockCalled(t *testing.T, actualCalls, expectedCalls int, mockName string) {
	t.Helper()
	if actualCalls != expectedCalls {
		t.Fatalf("Mock %s: expected %d calls, got %d", mockName, expectedCalls, actualCalls)
	}
}
