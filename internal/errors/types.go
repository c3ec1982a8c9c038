package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType names the stage of an invocation or command that failed
type ErrorType string

const (
	// ErrorTypeValidation is an event body or argument that cannot be read
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNetwork is the trivia API or a remote function being unreachable
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeUpstream is the trivia API answering outside 2xx
	ErrorTypeUpstream ErrorType = "upstream"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeContract ErrorType = "contract"
	ErrorTypeMCP      ErrorType = "mcp"
	ErrorTypeInternal ErrorType = "internal"
)

// MaxUpstreamBody bounds how much of a failed upstream answer is kept
const MaxUpstreamBody = 256

// FactsError is a failed invocation or command. Context holds the fields
// logged by PresentError and used by UserMessage.
type FactsError struct {
	Type    ErrorType
	Message string
	Context map[string]interface{}
	Cause   error
}

func (e *FactsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

func (e *FactsError) Unwrap() error {
	return e.Cause
}

// WithContext sets one context field and returns e
func (e *FactsError) WithContext(key string, value interface{}) *FactsError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a FactsError without a cause
func New(errType ErrorType, message string) *FactsError {
	return Wrap(nil, errType, message)
}

// Wrap attaches a type and message to cause
func Wrap(cause error, errType ErrorType, message string) *FactsError {
	return &FactsError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
		Cause:   cause,
	}
}

// InvalidEvent reports an event body that does not yield a query.
// cause may be nil.
func InvalidEvent(cause error, reason string) *FactsError {
	return Wrap(cause, ErrorTypeValidation, reason).WithContext("field", "body")
}

// UpstreamStatus reports a trivia API answer outside 2xx. Only the head
// of body is kept.
func UpstreamStatus(status int, url string, body []byte) *FactsError {
	if len(body) > MaxUpstreamBody {
		body = body[:MaxUpstreamBody]
	}
	return New(ErrorTypeUpstream, "trivia API returned an error").
		WithContext("status", status).
		WithContext("url", url).
		WithContext("body", string(body))
}

// As returns the first FactsError in err's chain
func As(err error) (*FactsError, bool) {
	var fErr *FactsError
	if stderrors.As(err, &fErr) {
		return fErr, true
	}
	return nil, false
}

// IsType reports whether err's chain holds a FactsError of errType
func IsType(err error, errType ErrorType) bool {
	fErr, ok := As(err)
	return ok && fErr.Type == errType
}

// GetType returns the type of err, or ErrorTypeInternal for foreign errors
func GetType(err error) ErrorType {
	if fErr, ok := As(err); ok {
		return fErr.Type
	}
	return ErrorTypeInternal
}
