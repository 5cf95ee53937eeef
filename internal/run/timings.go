package run

import (
	"fmt"
	"sync"
	"time"
)

// Timings tracks durations and call counters for the stages of a run.
type Timings struct {
	mu sync.Mutex

	// Sheet reading and normalization
	ReadTotal      time.Duration
	ReadCount      int64
	NormalizeTotal time.Duration
	NormalizeCount int64

	// Remote API
	LookupTotal time.Duration
	LookupCount int64
	MutateTotal time.Duration
	MutateCount int64

	// HTTP attempts, including retries
	HTTPAttempts int64
	HTTPRetries  int64
}

// NewTimings creates an empty Timings instance.
func NewTimings() *Timings {
	return &Timings{}
}

// ObserveRead records one sheet row read.
func (t *Timings) ObserveRead(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ReadTotal += d
	t.ReadCount++
}

// ObserveNormalize records one row normalization.
func (t *Timings) ObserveNormalize(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.NormalizeTotal += d
	t.NormalizeCount++
}

// ObserveLookup records one remote lookup round-trip.
func (t *Timings) ObserveLookup(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.LookupTotal += d
	t.LookupCount++
}

// ObserveMutate records one mutation round-trip, retries included.
func (t *Timings) ObserveMutate(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.MutateTotal += d
	t.MutateCount++
}

// IncAttempt counts one HTTP attempt.
func (t *Timings) IncAttempt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.HTTPAttempts++
}

// IncRetry counts one HTTP retry.
func (t *Timings) IncRetry() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.HTTPRetries++
}

// String returns a formatted summary of recorded timings.
func (t *Timings) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var result string

	if t.ReadCount > 0 {
		avg := t.ReadTotal / time.Duration(t.ReadCount)
		result += fmt.Sprintf("read: total=%v count=%d avg=%v; ", t.ReadTotal, t.ReadCount, avg)
	}
	if t.NormalizeCount > 0 {
		avg := t.NormalizeTotal / time.Duration(t.NormalizeCount)
		result += fmt.Sprintf("normalize: total=%v count=%d avg=%v; ", t.NormalizeTotal, t.NormalizeCount, avg)
	}
	if t.LookupCount > 0 {
		avg := t.LookupTotal / time.Duration(t.LookupCount)
		result += fmt.Sprintf("lookup: total=%v count=%d avg=%v; ", t.LookupTotal, t.LookupCount, avg)
	}
	if t.MutateCount > 0 {
		avg := t.MutateTotal / time.Duration(t.MutateCount)
		result += fmt.Sprintf("mutate: total=%v count=%d avg=%v; ", t.MutateTotal, t.MutateCount, avg)
	}
	if t.HTTPAttempts > 0 {
		result += fmt.Sprintf("http: attempts=%d retries=%d; ", t.HTTPAttempts, t.HTTPRetries)
	}

	if result == "" {
		return "No timings recorded"
	}
	return result[:len(result)-2]
}
