// Package testutil provides shared testing utilities and fixtures
package testutil

// Event bodies used across handler tests
const (
	TriviaBody       = `{"number": 42, "type": "trivia"}`
	StringNumberBody = `{"number": "7", "type": "math"}`
	MissingTypeBody  = `{"number": 42}`
	MissingBothBody  = `{}`
	MalformedBody    = `{`
)

// FortyTwoFact is the canned upstream answer for 42
const FortyTwoFact = "42 is a number."
