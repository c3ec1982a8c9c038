package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// RequestToProxyEvent converts an http.Request to an API Gateway REST
// proxy event. Bodies that are not valid UTF-8 are base64 encoded.
func RequestToProxyEvent(req *http.Request) (events.APIGatewayProxyRequest, error) {
	var bodyString string
	var isBase64Encoded bool

	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return events.APIGatewayProxyRequest{}, fmt.Errorf("reading request body: %w", err)
		}
		// Restore body for potential retries
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		if utf8.Valid(bodyBytes) {
			bodyString = string(bodyBytes)
		} else {
			bodyString = base64.StdEncoding.EncodeToString(bodyBytes)
			isBase64Encoded = true
		}
	}

	headers := make(map[string]string)
	multiHeaders := make(map[string][]string)
	for key, values := range req.Header {
		headers[key] = strings.Join(values, ",")
		multiHeaders[key] = values
	}
	if req.Host != "" {
		headers["Host"] = req.Host
		multiHeaders["Host"] = []string{req.Host}
	}

	var queryParams map[string]string
	var multiQuery map[string][]string
	if query := req.URL.Query(); len(query) > 0 {
		queryParams = make(map[string]string, len(query))
		multiQuery = make(map[string][]string, len(query))
		for key, values := range query {
			queryParams[key] = strings.Join(values, ",")
			multiQuery[key] = values
		}
	}

	path := req.URL.Path
	if path == "" {
		path = "/"
	}

	now := time.Now()
	return events.APIGatewayProxyRequest{
		Resource:                        path,
		Path:                            path,
		HTTPMethod:                      req.Method,
		Headers:                         headers,
		MultiValueHeaders:               multiHeaders,
		QueryStringParameters:           queryParams,
		MultiValueQueryStringParameters: multiQuery,
		RequestContext: events.APIGatewayProxyRequestContext{
			AccountID:        "123456789012",
			APIID:            "lambda-adapter",
			DomainName:       "lambda.local",
			Stage:            "local",
			RequestID:        fmt.Sprintf("numberfacts-%d", now.UnixNano()),
			ResourcePath:     path,
			HTTPMethod:       req.Method,
			Path:             path,
			Protocol:         "HTTP/1.1",
			RequestTime:      now.Format("02/Jan/2006:15:04:05 -0700"),
			RequestTimeEpoch: now.UnixMilli(),
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  sourceIP(req),
				UserAgent: req.UserAgent(),
			},
		},
		Body:            bodyString,
		IsBase64Encoded: isBase64Encoded,
	}, nil
}

func sourceIP(req *http.Request) string {
	if req.RemoteAddr == "" {
		return "127.0.0.1"
	}
	if i := strings.LastIndex(req.RemoteAddr, ":"); i > 0 {
		return req.RemoteAddr[:i]
	}
	return req.RemoteAddr
}

// ProxyResponseToHTTP converts a Lambda proxy response payload to an http.Response
func ProxyResponseToHTTP(payload []byte) (*http.Response, error) {
	var proxyResp events.APIGatewayProxyResponse
	if err := json.Unmarshal(payload, &proxyResp); err != nil {
		return nil, fmt.Errorf("parsing Lambda response: %w", err)
	}

	body, err := decodeBody(proxyResp.Body, proxyResp.IsBase64Encoded)
	if err != nil {
		return nil, err
	}

	resp := &http.Response{
		StatusCode:    proxyResp.StatusCode,
		Status:        fmt.Sprintf("%d %s", proxyResp.StatusCode, http.StatusText(proxyResp.StatusCode)),
		Header:        make(http.Header),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}

	for key, values := range proxyResp.MultiValueHeaders {
		for _, value := range values {
			resp.Header.Add(key, value)
		}
	}
	for key, value := range proxyResp.Headers {
		resp.Header.Set(key, value)
	}

	return resp, nil
}

// WriteProxyResponse writes a proxy response the way API Gateway would
func WriteProxyResponse(w http.ResponseWriter, proxyResp events.APIGatewayProxyResponse) error {
	body, err := decodeBody(proxyResp.Body, proxyResp.IsBase64Encoded)
	if err != nil {
		return err
	}

	for key, values := range proxyResp.MultiValueHeaders {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	for key, value := range proxyResp.Headers {
		w.Header().Set(key, value)
	}

	status := proxyResp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

func decodeBody(body string, isBase64Encoded bool) ([]byte, error) {
	if !isBase64Encoded {
		return []byte(body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 body: %w", err)
	}
	return decoded, nil
}
