// Package mcp exposes the numberfacts handlers as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/aws/aws-lambda-go/events"
	"github.com/brendan.keane/numberfacts/internal/config"
	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/forwarder"
	"github.com/brendan.keane/numberfacts/internal/logger"
	"github.com/brendan.keane/numberfacts/internal/primes"
	"github.com/brendan.keane/numberfacts/pkg/openapi"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const (
	serverName    = "numberfacts"
	serverVersion = "1.0.0"

	defaultInstructions = "Look up facts about numbers and count primes. " +
		"number_fact forwards its arguments verbatim to the trivia API, " +
		"so omitted arguments are sent as \"undefined\"."

	// maxPrimes bounds count_primes so a tool call cannot pin a CPU
	maxPrimes = 10_000_000
)

// Server serves the numberfacts tools
type Server struct {
	logger    zerolog.Logger
	forwarder *forwarder.Forwarder
	counter   *primes.Counter
	viewer    *openapi.Viewer
	mcp       *server.MCPServer
}

// NewServer creates an MCP server backed by a forwarder and a prime counter
func NewServer(log zerolog.Logger, cfg *config.Config, fwd *forwarder.Forwarder, counter *primes.Counter) (*Server, error) {
	parser, err := openapi.NewContractParser()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeContract, "failed to load embedded contract")
	}

	instructions := defaultInstructions
	if cfg != nil && cfg.MCP.Description != "" {
		instructions = cfg.MCP.Description
	}

	s := &Server{
		logger:    log.With().Str("component", "mcp_server").Logger(),
		forwarder: fwd,
		counter:   counter,
		viewer:    openapi.NewViewer(parser),
		mcp: server.NewMCPServer(serverName, serverVersion,
			server.WithToolCapabilities(false),
			server.WithInstructions(instructions),
		),
	}

	s.mcp.AddTool(numberFactTool(), s.handleNumberFact)
	s.mcp.AddTool(countPrimesTool(), s.handleCountPrimes)
	s.mcp.AddTool(describeContractTool(), s.handleDescribeContract)

	return s, nil
}

// Start serves requests on stdin/stdout until stdin closes
func (s *Server) Start() error {
	s.logger.Debug().Msg("MCP server started, reading from stdin")
	if err := server.ServeStdio(s.mcp); err != nil {
		return errors.Wrap(err, errors.ErrorTypeMCP, "MCP server stopped")
	}
	return nil
}

func numberFactTool() mcp.Tool {
	return mcp.NewTool("number_fact",
		mcp.WithDescription("Fetch a fact about a number. The answer is prefixed with the CPU architecture that served it."),
		mcp.WithString("number",
			mcp.Required(),
			mcp.Description("Number the fact is about, e.g. 42"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Fact category"),
			mcp.Enum("trivia", "math", "date", "year"),
		),
	)
}

func countPrimesTool() mcp.Tool {
	return mcp.NewTool("count_primes",
		mcp.WithDescription("Count the prime numbers less than or equal to max"),
		mcp.WithNumber("max",
			mcp.Required(),
			mcp.Description("Inclusive upper bound"),
		),
	)
}

func describeContractTool() mcp.Tool {
	return mcp.NewTool("describe_contract",
		mcp.WithDescription("Describe the HTTP contract of the numberfacts functions"),
		mcp.WithString("path", mcp.Description("Operation path, e.g. / or /primes. Empty lists every operation.")),
		mcp.WithString("method", mcp.Description("HTTP method filter")),
	)
}

func (s *Server) handleNumberFact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.ForMCP(s.logger, req.Params.Name)

	// Only the two forwarded fields; absent ones stay absent
	body := make(map[string]interface{})
	args := req.GetArguments()
	for _, key := range []string{"number", "type"} {
		if v, ok := args[key]; ok {
			body[key] = v
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resp, err := s.forwarder.Handle(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/",
		Body:       string(data),
	})
	if err != nil {
		log.Warn().Err(err).Msg("number_fact failed")
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}

	return mcp.NewToolResultText(resp.Body), nil
}

func (s *Server) handleCountPrimes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.ForMCP(s.logger, req.Params.Name)

	raw, ok := req.GetArguments()["max"]
	if !ok {
		return mcp.NewToolResultError("max is required"), nil
	}

	var max float64
	switch v := raw.(type) {
	case float64:
		max = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return mcp.NewToolResultError("max must be a number"), nil
		}
		max = f
	default:
		return mcp.NewToolResultError("max must be a number"), nil
	}

	if max != math.Trunc(max) {
		return mcp.NewToolResultError("max must be an integer"), nil
	}
	if max > maxPrimes {
		return mcp.NewToolResultError(fmt.Sprintf("max must not exceed %d", maxPrimes)), nil
	}

	result := s.counter.Count(int(max))
	data, err := json.Marshal(result)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode result")
	}

	log.Debug().Str("message", result.Message).Msg("primes counted")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleDescribeContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	method, _ := args["method"].(string)

	out, err := s.viewer.View(path, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
