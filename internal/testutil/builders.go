package testutil

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/brendan.keane/numberfacts/internal/config"
)

// EventBuilder provides a fluent interface for building API Gateway proxy events
type EventBuilder struct {
	event events.APIGatewayProxyRequest
}

// NewEventBuilder creates a POST / event with an empty body
func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		event: events.APIGatewayProxyRequest{
			Resource:   "/",
			Path:       "/",
			HTTPMethod: "POST",
			Headers:    map[string]string{"Content-Type": "application/json"},
			RequestContext: events.APIGatewayProxyRequestContext{
				RequestID: "test-request",
				Stage:     "Prod",
			},
		},
	}
}

// WithBody sets the raw body string
func (b *EventBuilder) WithBody(body string) *EventBuilder {
	b.event.Body = body
	return b
}

// WithJSONBody marshals v into the body
func (b *EventBuilder) WithJSONBody(v interface{}) *EventBuilder {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	b.event.Body = string(data)
	return b
}

// WithQuery sets a query string parameter
func (b *EventBuilder) WithQuery(key, value string) *EventBuilder {
	if b.event.QueryStringParameters == nil {
		b.event.QueryStringParameters = make(map[string]string)
	}
	b.event.QueryStringParameters[key] = value
	return b
}

// Build returns the event
func (b *EventBuilder) Build() events.APIGatewayProxyRequest {
	return b.event
}

// LambdaContext returns ctx carrying a Lambda invocation context
func LambdaContext(ctx context.Context, requestID string) context.Context {
	return lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{
		AwsRequestID:       requestID,
		InvokedFunctionArn: "arn:aws:lambda:us-east-1:123456789012:function:numberfacts",
	})
}

// ConfigBuilder provides a fluent interface for building test configurations
type ConfigBuilder struct {
	config *config.Config
}

// NewConfigBuilder creates a new config builder with defaults and JSON logging
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.NewConfig()
	cfg.Logger.Format = "json"
	return &ConfigBuilder{config: cfg}
}

// WithAPIURL sets the trivia API base URL
func (b *ConfigBuilder) WithAPIURL(url string) *ConfigBuilder {
	b.config.APIURL = url
	return b
}

// WithFunction sets the remote function name
func (b *ConfigBuilder) WithFunction(name string) *ConfigBuilder {
	b.config.Function = name
	return b
}

// WithEndpointURL sets the remote endpoint URL
func (b *ConfigBuilder) WithEndpointURL(url string) *ConfigBuilder {
	b.config.EndpointURL = url
	return b
}

// Build returns the built configuration
func (b *ConfigBuilder) Build() *config.Config {
	return b.config
}
