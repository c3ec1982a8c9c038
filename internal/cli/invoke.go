package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/brendan.keane/numberfacts/internal/config"
	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/forwarder"
	pkghttp "github.com/brendan.keane/numberfacts/pkg/http"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ClientFunc builds the client used for remote invocations
type ClientFunc func(ctx context.Context, cfg *config.Config) (*pkghttp.Client, error)

// DefaultClient loads AWS credentials only when a function is targeted
func DefaultClient(ctx context.Context, cfg *config.Config) (*pkghttp.Client, error) {
	if cfg.Function == "" {
		return pkghttp.NewClientWithInvoker(nil, nil), nil
	}
	client, err := pkghttp.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to load AWS configuration")
	}
	return client, nil
}

// InvokeHandler handles the invoke command
type InvokeHandler struct {
	logger    zerolog.Logger
	newClient ClientFunc
}

// NewInvokeHandler creates a new invoke command handler
func NewInvokeHandler(logger zerolog.Logger) *InvokeHandler {
	return NewInvokeHandlerWithClient(logger, DefaultClient)
}

// NewInvokeHandlerWithClient creates an invoke handler with a custom remote client
func NewInvokeHandlerWithClient(logger zerolog.Logger, newClient ClientFunc) *InvokeHandler {
	return &InvokeHandler{
		logger:    logger.With().Str("handler", "invoke").Logger(),
		newClient: newClient,
	}
}

// Execute runs the handler in-process, or against the deployed function
// or endpoint when one is configured, and prints the envelope
func (h *InvokeHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, h.logger)
	if err != nil {
		return err
	}

	body, err := eventBody(cmd, args)
	if err != nil {
		return err
	}

	var resp forwarder.Response
	switch {
	case cfg.Function != "":
		resp, err = h.invokeRemote(cmd.Context(), cfg, "lambda://"+cfg.Function+"/", body)
	case cfg.EndpointURL != "":
		resp, err = h.invokeRemote(cmd.Context(), cfg, cfg.EndpointURL, body)
	default:
		resp, err = newForwarder(cfg, h.logger).Handle(cmd.Context(), events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPost,
			Path:       "/",
			Body:       body,
		})
	}
	if err != nil {
		return err
	}

	bodyOnly, _ := cmd.Flags().GetBool("body-only")
	return printEnvelope(cmd.OutOrStdout(), resp, bodyOnly)
}

func (h *InvokeHandler) invokeRemote(ctx context.Context, cfg *config.Config, target, body string) (forwarder.Response, error) {
	client, err := h.newClient(ctx, cfg)
	if err != nil {
		return forwarder.Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(body))
	if err != nil {
		return forwarder.Response{}, errors.Wrap(err, errors.ErrorTypeValidation, "invalid target").
			WithContext("url", target)
	}
	req.Header.Set("Content-Type", "application/json")

	h.logger.Debug().Str("target", target).Str("body", body).Msg("invoking remote handler")

	resp, err := pkghttp.NewHTTPClient(client, cfg.Timeout).Do(req)
	if err != nil {
		return forwarder.Response{}, errors.Wrap(err, errors.ErrorTypeNetwork, "remote invocation failed").
			WithContext("url", target)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return forwarder.Response{}, errors.Wrap(err, errors.ErrorTypeNetwork, "failed to read remote response").
			WithContext("url", target)
	}

	headers := make(map[string]string, len(resp.Header))
	for key := range resp.Header {
		headers[key] = resp.Header.Get(key)
	}

	return forwarder.Response{
		Headers:    headers,
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}, nil
}

// eventBody returns --body verbatim, or builds {"number":..,"type":..}
// from the positional arguments. Numeric arguments are sent as JSON numbers
// and absent arguments are left out.
func eventBody(cmd *cobra.Command, args []string) (string, error) {
	if cmd.Flags().Changed("body") {
		return cmd.Flags().GetString("body")
	}

	fields := make(map[string]interface{})
	if len(args) > 0 {
		var num json.Number
		if json.Unmarshal([]byte(args[0]), &num) == nil {
			fields["number"] = num
		} else {
			fields["number"] = args[0]
		}
	}
	if len(args) > 1 {
		fields["type"] = args[1]
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode event body")
	}
	return string(data), nil
}

func printEnvelope(w io.Writer, resp forwarder.Response, bodyOnly bool) error {
	if bodyOnly {
		_, err := io.WriteString(w, resp.Body+"\n")
		return err
	}

	return writeJSON(w, resp)
}

// writeJSON prints v indented and without HTML escaping
func writeJSON(w io.Writer, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode response")
	}
	_, err := w.Write(buf.Bytes())
	return err
}
