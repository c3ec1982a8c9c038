package cli

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// PrimesHandler handles the primes command
type PrimesHandler struct {
	logger zerolog.Logger
}

// NewPrimesHandler creates a new primes command handler
func NewPrimesHandler(logger zerolog.Logger) *PrimesHandler {
	return &PrimesHandler{
		logger: logger.With().Str("handler", "primes").Logger(),
	}
}

// Execute runs the prime counter in-process and prints its response
func (h *PrimesHandler) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New(errors.ErrorTypeValidation, "expected exactly one argument").
			WithContext("field", "max")
	}

	resp, err := newCounter(h.logger).Handle(cmd.Context(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/primes",
		QueryStringParameters: map[string]string{"max": args[0]},
	})
	if err != nil {
		return err
	}

	bodyOnly, _ := cmd.Flags().GetBool("body-only")
	if bodyOnly {
		_, err := cmd.OutOrStdout().Write([]byte(resp.Body + "\n"))
		return err
	}
	return writeJSON(cmd.OutOrStdout(), resp)
}
