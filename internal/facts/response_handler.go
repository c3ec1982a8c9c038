package facts

import (
	"io"
	"net/http"

	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/rs/zerolog"
)

// responseHandler implements ResponseHandler interface
type responseHandler struct {
	logger zerolog.Logger
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(logger zerolog.Logger) ResponseHandler {
	return &responseHandler{
		logger: logger.With().Str("component", "response_handler").Logger(),
	}
}

// HandleResponse reads the whole body as opaque text.
// Any status outside 2xx is an upstream failure.
func (h *responseHandler) HandleResponse(resp *http.Response, targetURL string) (string, error) {
	logger := h.logger.With().
		Int("status", resp.StatusCode).
		Str("content_type", resp.Header.Get("Content-Type")).
		Logger()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read response body")
		return "", errors.Wrap(err, errors.ErrorTypeNetwork, "failed to read response body").
			WithContext("url", targetURL)
	}

	logger.Debug().
		Int("body_length", len(body)).
		Msg("response body read")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.UpstreamStatus(resp.StatusCode, targetURL, body)
	}

	return string(body), nil
}
