// Package syncer reconciles normalized spreadsheet rows against the remote
// catalog: per-row lookup, payload building, mutation execution and outcome
// reporting.
package syncer

import (
	"context"
	"fmt"

	"github.com/mkravets/shopify-sheet-sync/internal/shopify"
)

// Executor is the remote catalog boundary used by the row processor.
// *shopify.Client is the real implementation; DryRunExecutor substitutes it
// when no mutation may be sent.
type Executor interface {
	ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error)
	CreateProduct(ctx context.Context, input shopify.ProductInput) (*shopify.Product, error)
	UpdateProduct(ctx context.Context, input shopify.ProductInput) (*shopify.Product, error)
	UpdateVariants(ctx context.Context, productID string, variants []shopify.VariantBulkInput) error
	CreateVariants(ctx context.Context, productID string, variants []shopify.VariantBulkInput) error
	AttachImage(ctx context.Context, productID, src string) error
}

var _ Executor = (*shopify.Client)(nil)

// Lookuper is the read-only slice of the client used by dry runs.
type Lookuper interface {
	ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error)
}

// PlannedAction is one mutation a dry run would have performed.
type PlannedAction struct {
	Op     string // "create product", "update product", ...
	Target string // product handle or id
	Detail string
}

// DryRunExecutor records intended mutations without any network write.
// Lookups are delegated to the real client so the create-vs-update decision
// in the preview matches what a live run would do.
type DryRunExecutor struct {
	Lookup  Lookuper
	Actions []PlannedAction
}

func (d *DryRunExecutor) record(op, target, detail string) {
	d.Actions = append(d.Actions, PlannedAction{Op: op, Target: target, Detail: detail})
}

func (d *DryRunExecutor) ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error) {
	return d.Lookup.ProductByHandle(ctx, handle)
}

// CreateProduct records the intent and fabricates the entity the processor
// expects back, echoing the input's variant stub and image entry.
func (d *DryRunExecutor) CreateProduct(_ context.Context, input shopify.ProductInput) (*shopify.Product, error) {
	detail := fmt.Sprintf("title %q", input.Title)
	if len(input.Images) > 0 {
		detail += " + image"
	}
	d.record("create product", input.Handle, detail)

	p := &shopify.Product{
		ID:     "dry-run:" + input.Handle,
		Handle: input.Handle,
		Title:  input.Title,
	}
	for i, v := range input.Variants {
		p.Variants = append(p.Variants, shopify.Variant{
			ID:    fmt.Sprintf("dry-run:%s/variant/%d", input.Handle, i),
			SKU:   v.SKU,
			Price: v.Price,
		})
	}
	for _, img := range input.Images {
		p.Images = append(p.Images, shopify.Image{Src: img.Src})
	}
	return p, nil
}

func (d *DryRunExecutor) UpdateProduct(_ context.Context, input shopify.ProductInput) (*shopify.Product, error) {
	// Update inputs carry the product id, not the handle.
	d.record("update product", input.ID, fmt.Sprintf("title %q", input.Title))
	return &shopify.Product{ID: input.ID, Handle: input.Handle, Title: input.Title}, nil
}

func (d *DryRunExecutor) UpdateVariants(_ context.Context, productID string, variants []shopify.VariantBulkInput) error {
	for _, v := range variants {
		d.record("update variant", productID, fmt.Sprintf("sku %q price %s", v.SKU, v.Price))
	}
	return nil
}

func (d *DryRunExecutor) CreateVariants(_ context.Context, productID string, variants []shopify.VariantBulkInput) error {
	for _, v := range variants {
		d.record("create variant", productID, fmt.Sprintf("sku %q price %s", v.SKU, v.Price))
	}
	return nil
}

func (d *DryRunExecutor) AttachImage(_ context.Context, productID, src string) error {
	d.record("attach image", productID, src)
	return nil
}
