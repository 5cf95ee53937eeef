package run

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/shopify-sheet-sync/internal/catalog"
)

func TestReportCounts(t *testing.T) {
	r := NewReport(false)
	require.NotEmpty(t, r.RunID)

	r.IncRowsRead()
	r.IncRowsRead()
	r.IncRowsRead()
	r.IncRowsEmpty()

	r.Add(catalog.Outcome{Row: 1, Handle: "a", Kind: catalog.OutcomeCreated})
	r.Add(catalog.Outcome{Row: 2, Handle: "b", Kind: catalog.OutcomeUpdated})
	r.Add(catalog.Outcome{Row: 3, Handle: "c", Kind: catalog.OutcomeFailed, Reason: "lookup failed"})

	assert.Equal(t, int64(1), r.Count(catalog.OutcomeCreated))
	assert.Equal(t, int64(1), r.Count(catalog.OutcomeUpdated))
	assert.Equal(t, int64(0), r.Count(catalog.OutcomeSkipped))
	assert.Equal(t, int64(1), r.Count(catalog.OutcomeFailed))

	failed := r.FailedOutcomes()
	require.Len(t, failed, 1)
	assert.Equal(t, "c", failed[0].Handle)
	assert.Equal(t, "lookup failed", failed[0].Reason)

	assert.Len(t, r.Outcomes(), 3)
}

func TestReportSummary(t *testing.T) {
	r := NewReport(false)
	r.IncRowsRead()
	r.Add(catalog.Outcome{Row: 1, Handle: "a", Kind: catalog.OutcomeCreated})
	r.Finish()

	s := r.Summary()
	assert.Contains(t, s, "rows=1")
	assert.Contains(t, s, "created=1")
	assert.Contains(t, s, "failed=0")
	assert.NotContains(t, s, "interrupted")

	r.MarkInterrupted()
	assert.Contains(t, r.Summary(), "interrupted=true")
}

func TestReportFinishIdempotent(t *testing.T) {
	r := NewReport(true)
	r.Finish()
	first := *r.FinishedAt
	time.Sleep(time.Millisecond)
	r.Finish()
	assert.Equal(t, first, *r.FinishedAt)
}

func TestTimingsString(t *testing.T) {
	tm := NewTimings()
	assert.Equal(t, "No timings recorded", tm.String())

	tm.ObserveLookup(10 * time.Millisecond)
	tm.ObserveLookup(30 * time.Millisecond)
	tm.ObserveMutate(20 * time.Millisecond)
	tm.IncAttempt()
	tm.IncAttempt()
	tm.IncRetry()

	s := tm.String()
	assert.Contains(t, s, "lookup: total=40ms count=2 avg=20ms")
	assert.Contains(t, s, "mutate:")
	assert.Contains(t, s, "attempts=2 retries=1")
}
