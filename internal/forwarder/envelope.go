package forwarder

// ContentType is the declared type of every successful response.
// The body is not JSON; the header is kept as deployed clients see it.
const ContentType = "application/json"

// Response is the envelope returned to the invoking platform.
// All four keys are always serialized.
type Response struct {
	IsBase64Encoded bool              `json:"isBase64Encoded"`
	Headers         map[string]string `json:"headers"`
	StatusCode      int               `json:"statusCode"`
	Body            string            `json:"body"`
}

// NewResponse builds the success envelope around body
func NewResponse(body string) Response {
	return Response{
		IsBase64Encoded: false,
		Headers: map[string]string{
			"Content-Type": ContentType,
		},
		StatusCode: 200,
		Body:       body,
	}
}

// Body builds "Running on:<arch> - <payload>"
func Body(arch, payload string) string {
	return "Running on:" + arch + " - " + payload
}
