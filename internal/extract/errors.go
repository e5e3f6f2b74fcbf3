package extract

import (
	"fmt"
	"strconv"
	"time"
)

// ValidationError indicates the model's output could not be accepted as an
// invoice record: missing required field, wrong type, malformed email, or
// JSON that does not parse. Retrying the same call is unlikely to help;
// the prompt or schema is the thing to fix.
type ValidationError struct {
	Err error
	Raw []byte
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invoice extraction validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ServiceError indicates the model call itself failed: transport error,
// auth, rate limit, or a malformed API envelope. Callers may retry with
// backoff; RetryAfter is populated on HTTP 429 when the server sent one.
type ServiceError struct {
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("extraction service error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("extraction service error: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// parseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func parseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
