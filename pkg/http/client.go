package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// LambdaInvoker is the part of the Lambda API the client needs
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Client wraps the standard http.Client and adds Lambda invocation support
type Client struct {
	*http.Client
	invoker LambdaInvoker
}

// NewClient creates a new HTTP client with Lambda support using the
// default AWS credential chain
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientWithHTTPClient(ctx, http.DefaultClient)
}

// NewClientWithHTTPClient creates a new client with a custom HTTP client
func NewClientWithHTTPClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return NewClientWithInvoker(httpClient, lambda.NewFromConfig(cfg)), nil
}

// NewClientWithInvoker creates a client around an existing invoker
func NewClientWithInvoker(httpClient *http.Client, invoker LambdaInvoker) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Client:  httpClient,
		invoker: invoker,
	}
}

// Do performs the request, routing to Lambda or HTTP based on the URL scheme
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme == "lambda" {
		return c.doLambda(req)
	}
	return c.Client.Do(req)
}

// Get performs a GET request
func (c *Client) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Post performs a POST request
func (c *Client) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(req)
}

// FunctionError is returned when the invoked function itself failed.
// The proxy integration would answer such an invocation with a 502.
type FunctionError struct {
	Function string `json:"-"`
	Kind     string `json:"-"` // Unhandled or Handled, as reported by Lambda
	Type     string `json:"errorType"`
	Message  string `json:"errorMessage"`
}

func (e *FunctionError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("lambda function %s failed (%s): %s: %s", e.Function, e.Kind, e.Type, e.Message)
	}
	return fmt.Sprintf("lambda function %s failed (%s): %s", e.Function, e.Kind, e.Message)
}

// doLambda handles Lambda invocations
func (c *Client) doLambda(req *http.Request) (*http.Response, error) {
	functionName := req.URL.Host
	if functionName == "" {
		return nil, fmt.Errorf("lambda URL missing function name")
	}
	if c.invoker == nil {
		return nil, fmt.Errorf("lambda invocation not configured")
	}

	event, err := RequestToProxyEvent(req)
	if err != nil {
		return nil, fmt.Errorf("converting request to Lambda event: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshaling Lambda event: %w", err)
	}

	output, err := c.invoker.Invoke(req.Context(), &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("invoking Lambda function: %w", err)
	}

	if output.FunctionError != nil {
		fnErr := &FunctionError{Function: functionName, Kind: *output.FunctionError}
		if json.Unmarshal(output.Payload, fnErr) != nil || fnErr.Message == "" {
			fnErr.Message = string(output.Payload)
		}
		return nil, fnErr
	}

	return ProxyResponseToHTTP(output.Payload)
}
