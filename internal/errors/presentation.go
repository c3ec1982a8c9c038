package errors

import (
	"fmt"

	"github.com/rs/zerolog"
)

// UserMessage returns a user-friendly error message
func UserMessage(err error) string {
	if fErr, ok := As(err); ok {
		return formatUserError(fErr)
	}
	return err.Error()
}

// formatUserError creates user-friendly error messages based on error type
func formatUserError(fErr *FactsError) string {
	switch fErr.Type {
	case ErrorTypeValidation:
		return formatValidationError(fErr)
	case ErrorTypeNetwork:
		return formatNetworkError(fErr)
	case ErrorTypeUpstream:
		return formatUpstreamError(fErr)
	case ErrorTypeConfig:
		return formatConfigError(fErr)
	default:
		return fErr.Error()
	}
}

func formatValidationError(fErr *FactsError) string {
	msg := fErr.Error()
	if field, ok := fErr.Context["field"]; ok {
		msg = fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return msg
}

func formatNetworkError(fErr *FactsError) string {
	msg := fErr.Error()
	if url, ok := fErr.Context["url"]; ok {
		msg = fmt.Sprintf("Network error accessing %s: %s", url, msg)
	}
	return msg
}

func formatUpstreamError(fErr *FactsError) string {
	msg := fErr.Message
	if status, ok := fErr.Context["status"]; ok {
		msg = fmt.Sprintf("%s (status %v)", msg, status)
	}
	return msg
}

func formatConfigError(fErr *FactsError) string {
	msg := fErr.Error()
	if key, ok := fErr.Context["key"]; ok {
		msg = fmt.Sprintf("Configuration error (%s): %s", key, msg)
	}
	return msg
}

// PresentError logs an error with its context fields as structured data
func PresentError(logger zerolog.Logger, err error) {
	if err == nil {
		return
	}

	if fErr, ok := As(err); ok {
		event := logger.Error().Str("error_type", string(fErr.Type))
		for key, value := range fErr.Context {
			event = event.Interface(key, value)
		}
		if fErr.Cause != nil {
			event = event.AnErr("cause", fErr.Cause)
		}
		event.Msg(UserMessage(fErr))
		return
	}

	logger.Error().Err(err).Msg("")
}

// DebugInfo returns detailed error information for debugging
func DebugInfo(err error) map[string]interface{} {
	info := map[string]interface{}{
		"error":   err.Error(),
		"type":    "unknown",
		"context": map[string]interface{}{},
	}

	if fErr, ok := As(err); ok {
		info["type"] = string(fErr.Type)
		info["message"] = fErr.Message
		info["context"] = fErr.Context

		if fErr.Cause != nil {
			info["cause"] = fErr.Cause.Error()
		}
	}

	return info
}
