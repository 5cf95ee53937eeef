package shopify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicyDelay(t *testing.T) {
	p := DefaultRetryPolicy()

	tests := []struct {
		name    string
		attempt int
		hint    time.Duration
		want    time.Duration
	}{
		{name: "first retry", attempt: 1, want: time.Second},
		{name: "second retry doubles", attempt: 2, want: 2 * time.Second},
		{name: "third retry doubles again", attempt: 3, want: 4 * time.Second},
		{name: "fifth retry at cap", attempt: 5, want: 16 * time.Second},
		{name: "beyond cap stays capped", attempt: 10, want: 16 * time.Second},
		{name: "huge attempt does not overflow", attempt: 64, want: 16 * time.Second},
		{name: "server hint wins", attempt: 1, hint: 7 * time.Second, want: 7 * time.Second},
		{name: "server hint clamped to cap", attempt: 1, hint: time.Minute, want: 16 * time.Second},
		{name: "zero attempt treated as first", attempt: 0, want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Delay(tt.attempt, tt.hint))
		})
	}
}

func TestRetryPolicyDelayMonotonic(t *testing.T) {
	p := DefaultRetryPolicy()
	prev := time.Duration(0)
	for attempt := 1; attempt <= 12; attempt++ {
		d := p.Delay(attempt, 0)
		assert.GreaterOrEqual(t, d, prev, "attempt %d", attempt)
		assert.LessOrEqual(t, d, p.MaxDelay)
		prev = d
	}
}
