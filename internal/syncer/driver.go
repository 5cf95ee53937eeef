package syncer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mkravets/shopify-sheet-sync/internal/catalog"
	"github.com/mkravets/shopify-sheet-sync/internal/run"
	"github.com/mkravets/shopify-sheet-sync/internal/sheet"
)

// Driver walks a sheet row by row, feeding each row through the normalizer
// and the processor. Rows are handled strictly in order, one at a time.
type Driver struct {
	reader  sheet.Reader
	norm    *catalog.Normalizer
	proc    *Processor
	report  *run.Report
	timings *run.Timings
	log     *zap.Logger
	stop    atomic.Bool
}

// NewDriver wires a reader, normalizer and processor to a report.
func NewDriver(reader sheet.Reader, norm *catalog.Normalizer, proc *Processor, report *run.Report, timings *run.Timings, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	if timings == nil {
		timings = run.NewTimings()
	}
	return &Driver{
		reader:  reader,
		norm:    norm,
		proc:    proc,
		report:  report,
		timings: timings,
		log:     log,
	}
}

// RequestStop asks the driver to stop before starting the next row. The row
// in flight is unaffected. Safe to call from another goroutine.
func (d *Driver) RequestStop() {
	d.stop.Store(true)
}

// Run processes the sheet until it is exhausted, a stop is requested, or the
// context is cancelled. Both stop signals are observed only between rows: the
// row in flight finishes and its outcome is recorded before the run stops.
// Callers that must not abort a row mid-mutation pass an uncancelled context
// and use RequestStop. Run returns an error only for reader failures;
// row-level problems become Failed outcomes in the report.
func (d *Driver) Run(ctx context.Context) error {
	defer d.report.Finish()

	rowNo := int64(1) // the header occupies row 1
	for {
		if d.stop.Load() || ctx.Err() != nil {
			d.report.MarkInterrupted()
			d.log.Warn("run interrupted, stopping before next row", zap.Int64("last_row", rowNo))
			return nil
		}

		readStart := time.Now()
		row, err := d.reader.Next()
		d.timings.ObserveRead(time.Since(readStart))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row %d: %w", rowNo+1, err)
		}
		rowNo++
		d.report.IncRowsRead()

		if sheet.IsEmptyRow(row) {
			d.report.IncRowsEmpty()
			d.log.Debug("skipping empty row", zap.Int64("row", rowNo))
			continue
		}

		normStart := time.Now()
		rec, err := d.norm.NormalizeRow(rowNo, row)
		d.timings.ObserveNormalize(time.Since(normStart))
		if err != nil {
			d.record(catalog.Outcome{
				Row:    rowNo,
				Handle: d.norm.Handle(row),
				Kind:   catalog.OutcomeFailed,
				Reason: err.Error(),
			})
			continue
		}

		outcome := d.proc.ProcessRow(ctx, rowNo, rec)
		if d.report.DryRun {
			outcome = dryRunOutcome(outcome)
		}
		d.record(outcome)
	}
}

func (d *Driver) record(o catalog.Outcome) {
	d.report.Add(o)
	fields := []zap.Field{
		zap.Int64("row", o.Row),
		zap.String("handle", o.Handle),
		zap.String("outcome", string(o.Kind)),
	}
	if o.Reason != "" {
		fields = append(fields, zap.String("reason", o.Reason))
	}
	if o.Warning != "" {
		fields = append(fields, zap.String("warning", o.Warning))
	}
	switch o.Kind {
	case catalog.OutcomeFailed:
		d.log.Error("row failed", fields...)
	default:
		d.log.Info("row processed", fields...)
	}
}

// dryRunOutcome downgrades mutating outcomes to Skipped so a dry run never
// reports work it did not do. Failures pass through unchanged: lookups are
// real even in dry-run mode and their errors are real too.
func dryRunOutcome(o catalog.Outcome) catalog.Outcome {
	switch o.Kind {
	case catalog.OutcomeCreated:
		o.Kind = catalog.OutcomeSkipped
		o.Reason = "dry-run: would create product"
	case catalog.OutcomeUpdated:
		o.Kind = catalog.OutcomeSkipped
		o.Reason = "dry-run: would update product"
	}
	return o
}
