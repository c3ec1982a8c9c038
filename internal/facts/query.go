package facts

import "time"

// Query is a number/category pair already rendered as URL path segments
type Query struct {
	Number string
	Type   string
}

// Fact is the trivia API's answer for a Query
type Fact struct {
	URL         string
	StatusCode  int
	ContentType string
	Text        string
	Duration    time.Duration
}
