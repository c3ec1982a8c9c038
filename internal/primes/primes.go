// Package primes implements the prime counting Lambda handler.
package primes

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/brendan.keane/numberfacts/internal/logger"
	"github.com/brendan.keane/numberfacts/internal/platform"
	"github.com/rs/zerolog"
)

// UpTo returns every prime <= n in ascending order, testing each
// candidate only against the primes already found.
func UpTo(n int) []int {
	var found []int
	for i := 2; i <= n; i++ {
		isPrime := true
		limit := isqrt(i)
		for _, p := range found {
			if p > limit {
				break
			}
			if i%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			found = append(found, i)
		}
	}
	return found
}

func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// Result is the JSON document carried in the response body
type Result struct {
	Machine string  `json:"machine"`
	Elapsed float64 `json:"elapsed"`
	Message string  `json:"message"`
}

// Response is the proxy response. Headers are never set.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Counter handles prime counting invocations
type Counter struct {
	logger  zerolog.Logger
	machine string
	now     func() time.Time
}

// NewCounter creates a Counter reporting the host machine name
func NewCounter(log zerolog.Logger) *Counter {
	return &Counter{
		logger:  logger.ForComponent(log, "primes"),
		machine: platform.Machine(platform.Arch()),
		now:     time.Now,
	}
}

// Count finds the primes up to max by trial division and reports how long it took
func (c *Counter) Count(max int) Result {
	start := c.now()
	found := UpTo(max)
	elapsed := c.now().Sub(start)

	return Result{
		Machine: c.machine,
		Elapsed: elapsed.Seconds(),
		Message: fmt.Sprintf("There are %d prime numbers <= %d", len(found), max),
	}
}

// Handle reads queryStringParameters.max and counts the primes up to it.
// A missing or non-integer max fails the invocation.
func (c *Counter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (Response, error) {
	log := logger.ForInvocation(c.logger, ctx)
	log.Info().
		Str("path", event.Path).
		Interface("query", event.QueryStringParameters).
		Msg("event received")

	raw, ok := event.QueryStringParameters["max"]
	if !ok {
		return Response{}, errors.New(errors.ErrorTypeValidation, "missing query parameter").
			WithContext("field", "max")
	}

	max, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Response{}, errors.Wrap(err, errors.ErrorTypeValidation, "query parameter is not an integer").
			WithContext("field", "max")
	}

	result := c.Count(max)
	body, err := json.Marshal(result)
	if err != nil {
		return Response{}, errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode result")
	}

	log.Info().
		Float64("elapsed", result.Elapsed).
		Str("message", result.Message).
		Msg("primes counted")

	return Response{StatusCode: 200, Body: string(body)}, nil
}
