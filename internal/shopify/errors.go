package shopify

import (
	"fmt"
	"strings"
)

// ErrorKind classifies an API failure for retry decisions and reporting.
type ErrorKind string

const (
	// ErrRateLimited covers HTTP 429 and GraphQL THROTTLED responses.
	// Retryable on the rate-limit attempt budget.
	ErrRateLimited ErrorKind = "rate_limited"
	// ErrServerError covers HTTP 500/502/503/504 and transport failures.
	// Retryable on the server-error attempt budget.
	ErrServerError ErrorKind = "server_error"
	// ErrValidation covers GraphQL error arrays and mutation userErrors.
	// Deterministic; never retried.
	ErrValidation ErrorKind = "validation"
)

// APIError is a classified failure from the Shopify Admin API.
type APIError struct {
	Kind       ErrorKind
	Status     int      // HTTP status, 0 for transport and GraphQL-level errors
	Messages   []string // API error messages, verbatim where available
	RetryAfter float64  // server-suggested wait in seconds, 0 if none
}

func (e *APIError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Retryable reports whether the failure class may succeed on retry.
func (e *APIError) Retryable() bool {
	return e.Kind != ErrValidation
}

func userErrorMessages(errs []UserError) []string {
	msgs := make([]string, 0, len(errs))
	for _, ue := range errs {
		if len(ue.Field) > 0 {
			msgs = append(msgs, fmt.Sprintf("%s: %s", strings.Join(ue.Field, "."), ue.Message))
		} else {
			msgs = append(msgs, ue.Message)
		}
	}
	return msgs
}
