package cli

import (
	"fmt"

	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// DocsHandler handles the docs command
type DocsHandler struct {
	logger zerolog.Logger
}

// NewDocsHandler creates a new docs command handler
func NewDocsHandler(logger zerolog.Logger) *DocsHandler {
	return &DocsHandler{
		logger: logger.With().Str("handler", "docs").Logger(),
	}
}

// Execute renders the embedded contract, or --file when given
func (h *DocsHandler) Execute(cmd *cobra.Command, args []string) error {
	path := "*"
	if len(args) > 0 {
		path = args[0]
	}
	method, _ := cmd.Flags().GetString("request")
	file, _ := cmd.Flags().GetString("file")

	var parser *openapi.Parser
	var err error
	if file != "" {
		parser = openapi.NewParser()
		err = parser.LoadFromFile(file)
	} else {
		parser, err = openapi.NewContractParser()
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeContract, "failed to load contract").
			WithContext("file", file)
	}

	h.logger.Debug().Str("path", path).Str("method", method).Str("file", file).Msg("rendering contract")

	out, err := openapi.NewViewer(parser).View(path, method)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeContract, "failed to render contract")
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
