package cli

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/brendan.keane/numberfacts/internal/config"
	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/forwarder"
	"github.com/brendan.keane/numberfacts/internal/primes"
	pkghttp "github.com/brendan.keane/numberfacts/pkg/http"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// gatewayError is what API Gateway answers when the integration fails
const gatewayError = `{"message":"Internal server error"}`

// ServeHandler handles the serve command
type ServeHandler struct {
	logger zerolog.Logger
}

// NewServeHandler creates a new serve command handler
func NewServeHandler(logger zerolog.Logger) *ServeHandler {
	return &ServeHandler{
		logger: logger.With().Str("handler", "serve").Logger(),
	}
}

// Execute listens on cfg.Listen until the command context is cancelled
func (h *ServeHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, h.logger)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to listen").
			WithContext("key", "NUMBERFACTS_LISTEN").
			WithContext("listen", cfg.Listen)
	}

	return h.Serve(cmd.Context(), listener, cfg)
}

// Serve answers requests on listener until ctx is done
func (h *ServeHandler) Serve(ctx context.Context, listener net.Listener, cfg *config.Config) error {
	srv := &http.Server{
		Handler:           h.Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(listener)
	}()

	h.logger.Info().Str("addr", listener.Addr().String()).Msg("serving numberfacts")

	select {
	case err := <-done:
		return errors.Wrap(err, errors.ErrorTypeNetwork, "server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "shutdown failed")
	}
	h.logger.Info().Msg("server stopped")
	return nil
}

// Handler routes POST / to the forwarder and GET /primes to the counter
func (h *ServeHandler) Handler(cfg *config.Config) http.Handler {
	fwd := newForwarder(cfg, h.logger)
	counter := newCounter(h.logger)

	mux := http.NewServeMux()
	mux.Handle("/{$}", h.proxy(func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := fwd.Handle(ctx, event)
		return fromEnvelope(resp), err
	}))
	mux.Handle("GET /primes", h.proxy(func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := counter.Handle(ctx, event)
		return fromPrimes(resp), err
	}))
	return mux
}

type proxyFunc func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func (h *ServeHandler) proxy(handle proxyFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := h.logger.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()

		event, err := pkghttp.RequestToProxyEvent(r)
		if err != nil {
			logger.Error().Err(err).Msg("failed to convert request")
			writeGatewayError(w)
			return
		}

		resp, err := handle(r.Context(), event)
		if err != nil {
			errors.PresentError(logger, err)
			writeGatewayError(w)
			return
		}

		if err := pkghttp.WriteProxyResponse(w, resp); err != nil {
			logger.Error().Err(err).Msg("failed to write response")
		}
	})
}

func writeGatewayError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	w.Write([]byte(gatewayError))
}

func fromEnvelope(resp forwarder.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            resp.Body,
		IsBase64Encoded: resp.IsBase64Encoded,
	}
}

func fromPrimes(resp primes.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
	}
}
