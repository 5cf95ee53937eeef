package syncer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mkravets/shopify-sheet-sync/internal/catalog"
	"github.com/mkravets/shopify-sheet-sync/internal/shopify"
)

// Processor reconciles one row against the remote catalog. Every failure is
// caught here and converted into a Failed outcome so the batch never sees an
// error from a single row.
type Processor struct {
	exec Executor
	log  *zap.Logger
}

// NewProcessor creates a row processor over the given executor.
func NewProcessor(exec Executor, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{exec: exec, log: log}
}

// ProcessRow runs lookup, payload building, product and variant mutations and
// the conditional image attach for one row. An image attach failure degrades
// the outcome with a warning instead of failing the row: the product and
// variant changes have already succeeded and are not rolled back.
func (p *Processor) ProcessRow(ctx context.Context, rowNo int64, rec *catalog.RowRecord) catalog.Outcome {
	failed := func(stage string, err error) catalog.Outcome {
		return catalog.Outcome{
			Row:    rowNo,
			Handle: rec.Handle,
			Kind:   catalog.OutcomeFailed,
			Reason: fmt.Sprintf("%s: %v", stage, err),
		}
	}

	existing, err := p.exec.ProductByHandle(ctx, rec.Handle)
	if err != nil {
		return failed("lookup failed", err)
	}

	var (
		kind    catalog.OutcomeKind
		product *shopify.Product
	)
	if existing == nil {
		created, err := p.exec.CreateProduct(ctx, BuildProductCreate(rec))
		if err != nil {
			return failed("product create failed", err)
		}
		kind = catalog.OutcomeCreated
		product = created
	} else {
		if _, err := p.exec.UpdateProduct(ctx, BuildProductUpdate(rec, existing)); err != nil {
			return failed("product update failed", err)
		}
		kind = catalog.OutcomeUpdated
		product = existing
	}

	variant, matched := BuildVariantPayload(rec, product)
	if matched {
		err = p.exec.UpdateVariants(ctx, product.ID, []shopify.VariantBulkInput{variant})
	} else {
		err = p.exec.CreateVariants(ctx, product.ID, []shopify.VariantBulkInput{variant})
	}
	if err != nil {
		return failed("variant sync failed", err)
	}

	warning := ""
	// On create the image entry already travelled with the create payload;
	// only existing products may need a separate attach.
	if rec.ImageSrc != "" && kind == catalog.OutcomeUpdated && !ImageAlreadyAttached(rec.ImageSrc, existing) {
		if err := p.exec.AttachImage(ctx, product.ID, rec.ImageSrc); err != nil {
			warning = fmt.Sprintf("image upload failed: %v", err)
			p.log.Warn("image upload failed",
				zap.Int64("row", rowNo),
				zap.String("handle", rec.Handle),
				zap.Error(err),
			)
		}
	}

	return catalog.Outcome{
		Row:     rowNo,
		Handle:  rec.Handle,
		Kind:    kind,
		Warning: warning,
	}
}
