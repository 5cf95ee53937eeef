package shopify

import "context"

const productFields = `
  id
  handle
  title
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
`

const productCreateMutation = `
mutation CreateProduct($input: ProductInput!) {
  productCreate(input: $input) {
    product {` + productFields + `}
    userErrors {
      field
      message
    }
  }
}
`

const productUpdateMutation = `
mutation UpdateProduct($input: ProductInput!) {
  productUpdate(input: $input) {
    product {` + productFields + `}
    userErrors {
      field
      message
    }
  }
}
`

const variantsBulkUpdateMutation = `
mutation UpdateVariants($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    productVariants {
      id
      sku
      price
    }
    userErrors {
      field
      message
    }
  }
}
`

const variantsBulkCreateMutation = `
mutation CreateVariants($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkCreate(productId: $productId, variants: $variants) {
    productVariants {
      id
      sku
      price
    }
    userErrors {
      field
      message
    }
  }
}
`

const productCreateMediaMutation = `
mutation AttachImage($productId: ID!, $media: [CreateMediaInput!]!) {
  productCreateMedia(productId: $productId, media: $media) {
    media {
      preview {
        image {
          url
        }
      }
    }
    mediaUserErrors {
      field
      message
    }
  }
}
`

type mutationProductResult struct {
	Product    *productNode `json:"product"`
	UserErrors []UserError  `json:"userErrors"`
}

// CreateProduct creates a product with its initial variant stub and optional
// image entry, returning the created entity.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out struct {
		ProductCreate mutationProductResult `json:"productCreate"`
	}
	if err := c.execute(ctx, productCreateMutation, map[string]interface{}{"input": input}, &out); err != nil {
		return nil, err
	}
	if len(out.ProductCreate.UserErrors) > 0 {
		return nil, &APIError{Kind: ErrValidation, Messages: userErrorMessages(out.ProductCreate.UserErrors)}
	}
	return out.ProductCreate.Product.toProduct(), nil
}

// UpdateProduct updates the descriptive fields of an existing product.
// The input must never carry variants or images; those have dedicated
// mutations.
func (c *Client) UpdateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out struct {
		ProductUpdate mutationProductResult `json:"productUpdate"`
	}
	if err := c.execute(ctx, productUpdateMutation, map[string]interface{}{"input": input}, &out); err != nil {
		return nil, err
	}
	if len(out.ProductUpdate.UserErrors) > 0 {
		return nil, &APIError{Kind: ErrValidation, Messages: userErrorMessages(out.ProductUpdate.UserErrors)}
	}
	return out.ProductUpdate.Product.toProduct(), nil
}

// UpdateVariants updates existing variants of a product via the bulk path.
func (c *Client) UpdateVariants(ctx context.Context, productID string, variants []VariantBulkInput) error {
	var out struct {
		Result struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	vars := map[string]interface{}{"productId": productID, "variants": variants}
	if err := c.execute(ctx, variantsBulkUpdateMutation, vars, &out); err != nil {
		return err
	}
	if len(out.Result.UserErrors) > 0 {
		return &APIError{Kind: ErrValidation, Messages: userErrorMessages(out.Result.UserErrors)}
	}
	return nil
}

// CreateVariants adds new variants to an existing product. Used when a row's
// SKU matches none of the product's variants.
func (c *Client) CreateVariants(ctx context.Context, productID string, variants []VariantBulkInput) error {
	var out struct {
		Result struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"productVariantsBulkCreate"`
	}
	vars := map[string]interface{}{"productId": productID, "variants": variants}
	if err := c.execute(ctx, variantsBulkCreateMutation, vars, &out); err != nil {
		return err
	}
	if len(out.Result.UserErrors) > 0 {
		return &APIError{Kind: ErrValidation, Messages: userErrorMessages(out.Result.UserErrors)}
	}
	return nil
}

// AttachImage attaches one image by source URL.
func (c *Client) AttachImage(ctx context.Context, productID, src string) error {
	var out struct {
		Result struct {
			MediaUserErrors []UserError `json:"mediaUserErrors"`
		} `json:"productCreateMedia"`
	}
	vars := map[string]interface{}{
		"productId": productID,
		"media": []map[string]interface{}{
			{
				"originalSource":   src,
				"mediaContentType": "IMAGE",
			},
		},
	}
	if err := c.execute(ctx, productCreateMediaMutation, vars, &out); err != nil {
		return err
	}
	if len(out.Result.MediaUserErrors) > 0 {
		return &APIError{Kind: ErrValidation, Messages: userErrorMessages(out.Result.MediaUserErrors)}
	}
	return nil
}
