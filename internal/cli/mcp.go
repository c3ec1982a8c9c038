package cli

import (
	"github.com/brendan.keane/numberfacts/internal/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// MCPHandler handles MCP server commands
type MCPHandler struct {
	logger zerolog.Logger
}

// NewMCPHandler creates a new MCP command handler
func NewMCPHandler(logger zerolog.Logger) *MCPHandler {
	return &MCPHandler{
		logger: logger.With().Str("handler", "mcp").Logger(),
	}
}

// Execute serves the numberfacts tools over stdio
func (h *MCPHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, h.logger)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("api_url", cfg.APIURL).
		Bool("custom_instructions", cfg.MCP.Description != "").
		Msg("starting MCP server")

	server, err := mcp.NewServer(h.logger, cfg, newForwarder(cfg, h.logger), newCounter(h.logger))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create MCP server")
		return err
	}

	return server.Start()
}
