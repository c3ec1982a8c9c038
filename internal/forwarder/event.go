package forwarder

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/facts"
)

// Missing is how an absent body field renders into the outbound URL
const Missing = "undefined"

// ParseBody decodes an event body and renders its number and type fields
// as URL path segments. Neither field is validated.
func ParseBody(body string) (facts.Query, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return facts.Query{}, errors.InvalidEvent(err, "event body is not valid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return facts.Query{}, errors.InvalidEvent(nil, "event body has trailing data")
	}

	switch doc := v.(type) {
	case nil:
		return facts.Query{}, errors.InvalidEvent(nil, "event body is null")
	case map[string]interface{}:
		return facts.Query{
			Number: field(doc, "number"),
			Type:   field(doc, "type"),
		}, nil
	default:
		// Scalars and arrays carry no named fields
		return facts.Query{Number: Missing, Type: Missing}, nil
	}
}

func field(doc map[string]interface{}, key string) string {
	v, ok := doc[key]
	if !ok {
		return Missing
	}
	return Segment(v)
}

// Segment renders a decoded JSON value the way string concatenation
// renders it in the trigger's native runtime.
func Segment(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return formatNumber(val)
	case float64:
		return formatFloat(val)
	case map[string]interface{}:
		return "[object Object]"
	case []interface{}:
		var b bytes.Buffer
		for i, elem := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			if elem != nil {
				b.WriteString(Segment(elem))
			}
		}
		return b.String()
	default:
		return Missing
	}
}

func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		// Out of float64 range
		if strings.HasPrefix(string(n), "-") {
			return "-Infinity"
		}
		return "Infinity"
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + exp
}
