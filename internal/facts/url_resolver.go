package facts

import (
	"fmt"
	"strings"

	"github.com/brendan.keane/numberfacts/internal/errors"
)

// urlResolver implements URLResolver by plain concatenation onto a base
type urlResolver struct {
	base string
}

// NewURLResolver creates a resolver for the given base URL.
// The base must end in "/"; config.BaseURL guarantees that.
func NewURLResolver(base string) URLResolver {
	return &urlResolver{base: base}
}

// ResolveURL returns base + number + "/" + type.
// Segments are interpolated verbatim, without escaping or validation.
func (r *urlResolver) ResolveURL(query Query) (string, error) {
	if r.base == "" {
		return "", errors.New(errors.ErrorTypeConfig, "trivia API base URL is empty").
			WithContext("key", "NUMBERFACTS_API_URL")
	}

	var b strings.Builder
	b.Grow(len(r.base) + len(query.Number) + len(query.Type) + 1)
	b.WriteString(r.base)
	b.WriteString(query.Number)
	b.WriteString("/")
	b.WriteString(query.Type)

	return b.String(), nil
}

// requestURL prepares a resolved target for net/url the way a WHATWG URL
// parser treats it before sending: tabs and newlines are removed, trailing
// controls and spaces are trimmed, and the remaining controls, spaces,
// non-ASCII bytes and '%' signs not starting an escape are percent-encoded.
// Everything else is left exactly as resolved.
func requestURL(raw string) string {
	raw = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, raw)
	raw = strings.TrimRightFunc(raw, func(r rune) bool { return r <= ' ' })

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '%' && !(i+2 < len(raw) && isHex(raw[i+1]) && isHex(raw[i+2])):
			b.WriteString("%25")
		case c <= ' ' || c >= 0x7f:
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
