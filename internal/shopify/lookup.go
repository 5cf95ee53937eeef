package shopify

import (
	"context"
	"time"
)

const productByHandleQuery = `
query GetProductByHandle($handle: String!) {
  productByHandle(handle: $handle) {
    id
    handle
    title
    descriptionHtml
    vendor
    productType
    tags
    variants(first: 50) {
      edges {
        node {
          id
          sku
          price
          title
        }
      }
    }
    images(first: 50) {
      edges {
        node {
          id
          src
        }
      }
    }
  }
}
`

// ProductByHandle looks up a product by its handle. A nil product with a nil
// error means not found. Lookups are idempotent reads and are not retried;
// a failed lookup aborts the row, never the batch.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*Product, error) {
	start := time.Now()
	defer func() {
		if c.timings != nil {
			c.timings.ObserveLookup(time.Since(start))
		}
	}()

	var out struct {
		ProductByHandle *productNode `json:"productByHandle"`
	}
	if err := c.do(ctx, productByHandleQuery, map[string]interface{}{"handle": handle}, &out); err != nil {
		return nil, err
	}
	return out.ProductByHandle.toProduct(), nil
}
