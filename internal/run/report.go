// Package run tracks the state of one sync run: identity, counters, and
// per-stage timings. Nothing here survives the process; every run starts
// from a clean report.
package run

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/shopify-sheet-sync/internal/catalog"
)

// Report aggregates per-row outcomes for one run.
type Report struct {
	mu sync.Mutex

	RunID       string
	DryRun      bool
	Interrupted bool
	StartedAt   time.Time
	FinishedAt  *time.Time

	RowsRead  int64 // data rows seen, including empty ones
	RowsEmpty int64 // completely empty rows, ignored

	outcomes []catalog.Outcome
	counts   map[catalog.OutcomeKind]int64

	Timings *Timings
}

// NewReport creates a report for a new run.
func NewReport(dryRun bool) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		DryRun:    dryRun,
		StartedAt: time.Now(),
		counts:    make(map[catalog.OutcomeKind]int64),
		Timings:   NewTimings(),
	}
}

// Add records one row outcome.
func (r *Report) Add(o catalog.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
	r.counts[o.Kind]++
}

// IncRowsRead counts a data row read from the sheet.
func (r *Report) IncRowsRead() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.RowsRead++
}

// IncRowsEmpty counts an ignored empty row.
func (r *Report) IncRowsEmpty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.RowsEmpty++
}

// Count returns the number of outcomes of one kind.
func (r *Report) Count(kind catalog.OutcomeKind) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[kind]
}

// Outcomes returns a copy of all recorded outcomes in row order.
func (r *Report) Outcomes() []catalog.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// FailedOutcomes returns the failed outcomes in row order.
func (r *Report) FailedOutcomes() []catalog.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failed []catalog.Outcome
	for _, o := range r.outcomes {
		if o.Kind == catalog.OutcomeFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Finish marks the run as finished. Safe to call once.
func (r *Report) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FinishedAt == nil {
		now := time.Now()
		r.FinishedAt = &now
	}
}

// MarkInterrupted records that the run stopped before consuming all rows.
func (r *Report) MarkInterrupted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Interrupted = true
}

// Summary returns a one-line run summary with counts by outcome kind.
func (r *Report) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Duration(0)
	if r.FinishedAt != nil {
		elapsed = r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)
	}

	s := fmt.Sprintf("rows=%d created=%d updated=%d skipped=%d failed=%d elapsed=%v",
		r.RowsRead,
		r.counts[catalog.OutcomeCreated],
		r.counts[catalog.OutcomeUpdated],
		r.counts[catalog.OutcomeSkipped],
		r.counts[catalog.OutcomeFailed],
		elapsed,
	)
	if r.RowsEmpty > 0 {
		s += fmt.Sprintf(" empty=%d", r.RowsEmpty)
	}
	if r.Interrupted {
		s += " interrupted=true"
	}
	return s
}
