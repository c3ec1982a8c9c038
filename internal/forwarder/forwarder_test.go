package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/facts"
	"github.com/brendan.keane/numberfacts/internal/testutil"
	"github.com/rs/zerolog"
)

func newForwarder(t *testing.T, baseURL string, log zerolog.Logger) *Forwarder {
	t.Helper()
	cfg := testutil.NewConfigBuilder().WithAPIURL(baseURL).Build()
	fetcher := facts.NewClientFactory(log).CreateFetcher(cfg)
	return New(fetcher, log, WithArch("arm64"))
}

func TestForwarder_Handle(t *testing.T) {
	server := testutil.NewTriviaTestServer()
	defer server.Close()

	f := newForwarder(t, server.BaseURL(), zerolog.Nop())
	event := testutil.NewEventBuilder().WithBody(testutil.TriviaBody).Build()

	resp, err := f.Handle(context.Background(), event)
	testutil.AssertNoError(t, err, "Handle")

	testutil.AssertEqual(t, resp.StatusCode, 200, "status code")
	testutil.AssertStringEqual(t, resp.Body, "Running on:arm64 - 42 is a number.", "body")
	testutil.AssertEqual(t, resp.IsBase64Encoded, false, "isBase64Encoded")
	testutil.AssertHeadersEqual(t, resp.Headers, map[string]string{"Content-Type": "application/json"}, "headers")

	paths := server.Paths()
	if len(paths) != 1 || paths[0] != "/42/trivia" {
		t.Errorf("expected one GET /42/trivia, got %v", paths)
	}
}

func TestForwarder_MalformedBody(t *testing.T) {
	server := testutil.NewTriviaTestServer()
	defer server.Close()

	f := newForwarder(t, server.BaseURL(), zerolog.Nop())

	for _, body := range []string{testutil.MalformedBody, ""} {
		resp, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(body).Build())
		if err == nil {
			t.Fatalf("body %q: expected error, got envelope %+v", body, resp)
		}
		if resp.StatusCode != 0 {
			t.Errorf("body %q: expected zero envelope, got %+v", body, resp)
		}
	}

	testutil.AssertMockCalled(t, len(server.Paths()), 0, "trivia server")
}

func TestForwarder_MissingFields(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "missing type", body: testutil.MissingTypeBody, expected: "/42/undefined"},
		{name: "missing both", body: testutil.MissingBothBody, expected: "/undefined/undefined"},
		{name: "missing number", body: `{"type": "math"}`, expected: "/undefined/math"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewTriviaTestServer()
			defer server.Close()

			f := newForwarder(t, server.BaseURL(), zerolog.Nop())
			_, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(tt.body).Build())
			testutil.AssertNoError(t, err, "Handle")

			paths := server.Paths()
			if len(paths) != 1 {
				t.Fatalf("expected one request, got %v", paths)
			}
			testutil.AssertStringEqual(t, paths[0], tt.expected, "outbound path")
			testutil.AssertStringContains(t, paths[0], "undefined", "outbound path")
		})
	}
}

func TestForwarder_UnusualSegmentsAreDispatched(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "stray percent", body: `{"number": "50%", "type": "trivia"}`, expected: "/50%/trivia"},
		{name: "newline", body: `{"number": "a\nb", "type": "trivia"}`, expected: "/ab/trivia"},
		{name: "control character", body: `{"number": "a\u0001b", "type": "math"}`, expected: "/a\x01b/math"},
		{name: "space", body: `{"number": "4 2", "type": "trivia"}`, expected: "/4 2/trivia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewTriviaTestServer()
			defer server.Close()

			f := newForwarder(t, server.BaseURL(), zerolog.Nop())
			resp, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(tt.body).Build())
			testutil.AssertNoError(t, err, "Handle")
			testutil.AssertEqual(t, resp.StatusCode, 200, "status code")

			paths := server.Paths()
			if len(paths) != 1 {
				t.Fatalf("expected one request, got %q", paths)
			}
			testutil.AssertStringEqual(t, paths[0], tt.expected, "outbound path")
		})
	}
}

func TestForwarder_UpstreamFailure(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		f := newForwarder(t, testutil.RefusedURL(), zerolog.Nop())

		resp, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(testutil.TriviaBody).Build())
		if !errors.IsType(err, errors.ErrorTypeNetwork) {
			t.Fatalf("expected network error, got %v", err)
		}
		if resp.Headers != nil || resp.Body != "" {
			t.Errorf("expected no envelope, got %+v", resp)
		}
	})

	t.Run("error status", func(t *testing.T) {
		server := testutil.NewFixedTestServer(500, "text/plain", "oops")
		defer server.Close()

		f := newForwarder(t, server.BaseURL(), zerolog.Nop())

		_, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(testutil.TriviaBody).Build())
		if !errors.IsType(err, errors.ErrorTypeUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
		testutil.AssertMockCalled(t, len(server.Paths()), 1, "trivia server")
	})
}

func TestForwarder_SerializedEnvelope(t *testing.T) {
	server := testutil.NewTriviaTestServer()
	defer server.Close()

	f := newForwarder(t, server.BaseURL(), zerolog.Nop())
	resp, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(testutil.StringNumberBody).Build())
	testutil.AssertNoError(t, err, "Handle")

	data, err := json.Marshal(resp)
	testutil.AssertNoError(t, err, "marshal envelope")

	var decoded map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(data, &decoded), "unmarshal envelope")

	if len(decoded) != 4 {
		t.Errorf("expected exactly four keys, got %v", decoded)
	}
	if decoded["isBase64Encoded"] != false {
		t.Errorf("isBase64Encoded = %v, expected false", decoded["isBase64Encoded"])
	}
	if decoded["statusCode"] != float64(200) {
		t.Errorf("statusCode = %v", decoded["statusCode"])
	}
	headers, _ := decoded["headers"].(map[string]interface{})
	if len(headers) != 1 || headers["Content-Type"] != "application/json" {
		t.Errorf("headers = %v", decoded["headers"])
	}
}

func TestForwarder_BodyIsNotJSON(t *testing.T) {
	server := testutil.NewTriviaTestServer()
	defer server.Close()

	f := newForwarder(t, server.BaseURL(), zerolog.Nop())
	resp, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(testutil.TriviaBody).Build())
	testutil.AssertNoError(t, err, "Handle")

	testutil.AssertNotJSON(t, resp.Body, "body")
}

func TestForwarder_JSONUpstreamKeptOpaque(t *testing.T) {
	server := testutil.NewFixedTestServer(200, "application/json", `{"text":"42 is a number.","found":true}`)
	defer server.Close()

	f := newForwarder(t, server.BaseURL(), zerolog.Nop())
	resp, err := f.Handle(context.Background(), testutil.NewEventBuilder().WithBody(testutil.TriviaBody).Build())
	testutil.AssertNoError(t, err, "Handle")

	testutil.AssertStringEqual(t, resp.Body, `Running on:arm64 - {"text":"42 is a number.","found":true}`, "body")
}

func TestForwarder_Logs(t *testing.T) {
	server := testutil.NewTriviaTestServer()
	defer server.Close()

	var buf bytes.Buffer
	f := newForwarder(t, server.BaseURL(), zerolog.New(&buf))

	ctx := testutil.LambdaContext(context.Background(), "req-42")
	_, err := f.Handle(ctx, testutil.NewEventBuilder().WithBody(testutil.TriviaBody).Build())
	testutil.AssertNoError(t, err, "Handle")

	var infos []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if entry["level"] == "info" {
			infos = append(infos, entry)
		}
	}

	messages := []string{"running on", "event received", "upstream response received"}
	if len(infos) != len(messages) {
		t.Fatalf("expected %d info lines, got %d: %s", len(messages), len(infos), buf.String())
	}
	for i, msg := range messages {
		if infos[i]["message"] != msg {
			t.Errorf("info line %d = %v, expected %q", i, infos[i]["message"], msg)
		}
		if infos[i]["aws_request_id"] != "req-42" {
			t.Errorf("info line %d missing request id: %v", i, infos[i])
		}
	}
	if infos[0]["arch"] != "arm64" {
		t.Errorf("arch field = %v", infos[0]["arch"])
	}
	if infos[2]["data"] != testutil.FortyTwoFact {
		t.Errorf("data field = %v", infos[2]["data"])
	}
}

func TestNew_DefaultArch(t *testing.T) {
	f := New(nil, zerolog.Nop())
	if f.Arch() == "" {
		t.Errorf("expected a default architecture")
	}
}
