package shopify

import "time"

// RetryPolicy decides how long to wait before a retry. It is a pure value:
// given an attempt number and an optional server hint it returns a wait
// duration, so the policy is testable without real sleeps.
//
// Rate-limited and server-error failures each get their own attempt budget
// of MaxAttempts calls; validation failures are never retried.
type RetryPolicy struct {
	MaxAttempts  int           // total calls per failure class, including the first
	BaseDelay    time.Duration // first retry wait, doubled each attempt
	MaxDelay     time.Duration // cap for a single wait
	MaxTotalWait time.Duration // cap for the summed waits of one call
}

// DefaultRetryPolicy mirrors the API's documented throttling behavior:
// 1s base doubling to a 16s cap, at most 5 attempts, one minute total.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  5,
		BaseDelay:    time.Second,
		MaxDelay:     16 * time.Second,
		MaxTotalWait: time.Minute,
	}
}

// Delay returns the wait before retrying after the given failed attempt
// (1-based). A positive hint (the server's suggested wait, e.g. Retry-After)
// takes precedence over the computed backoff, clamped to MaxDelay.
// Waits are monotonically non-decreasing in the attempt number.
func (p RetryPolicy) Delay(attempt int, hint time.Duration) time.Duration {
	if hint > 0 {
		if hint > p.MaxDelay {
			return p.MaxDelay
		}
		return hint
	}

	if attempt < 1 {
		attempt = 1
	}
	// Shift overflow guard: beyond 30 doublings the cap applies regardless.
	if attempt-1 > 30 {
		return p.MaxDelay
	}
	d := p.BaseDelay * time.Duration(1<<uint(attempt-1))
	if d > p.MaxDelay || d <= 0 {
		return p.MaxDelay
	}
	return d
}
