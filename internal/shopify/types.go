package shopify

import "encoding/json"

// Product is the flattened remote catalog entity used by the sync layer.
type Product struct {
	ID              string
	Handle          string
	Title           string
	DescriptionHTML string
	Vendor          string
	ProductType     string
	Tags            []string
	Variants        []Variant
	Images          []Image
}

// Variant is one purchasable configuration of a remote product.
// Within one product SKU is expected unique; the first match by SKU wins.
type Variant struct {
	ID    string `json:"id"`
	SKU   string `json:"sku"`
	Price string `json:"price"`
	Title string `json:"title"`
}

// Image is one remote product image. Src equality is the idempotence key:
// an image is new only if no existing image has the same source URL.
type Image struct {
	ID  string `json:"id"`
	Src string `json:"src"`
}

// ProductInput is the payload for productCreate and productUpdate.
// Variants and Images are accepted on create only; product updates must use
// the dedicated variant and media mutations.
type ProductInput struct {
	ID              string         `json:"id,omitempty"`
	Title           string         `json:"title,omitempty"`
	Handle          string         `json:"handle,omitempty"`
	DescriptionHTML string         `json:"descriptionHtml,omitempty"`
	ProductType     string         `json:"productType,omitempty"`
	Vendor          string         `json:"vendor,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Variants        []VariantInput `json:"variants,omitempty"`
	Images          []ImageInput   `json:"images,omitempty"`
}

// VariantInput is the initial variant stub sent with productCreate.
type VariantInput struct {
	SKU     string   `json:"sku,omitempty"`
	Price   string   `json:"price,omitempty"`
	Options []string `json:"options,omitempty"`
}

// ImageInput is the initial image entry sent with productCreate.
type ImageInput struct {
	Src string `json:"src"`
}

// VariantBulkInput is the payload for productVariantsBulkUpdate and
// productVariantsBulkCreate. ID is set for updates and empty for creates.
type VariantBulkInput struct {
	ID           string             `json:"id,omitempty"`
	SKU          string             `json:"sku,omitempty"`
	Price        string             `json:"price,omitempty"`
	OptionValues []OptionValueInput `json:"optionValues,omitempty"`
}

// OptionValueInput names one option value of a variant.
type OptionValueInput struct {
	OptionName string `json:"optionName"`
	Name       string `json:"name"`
}

// UserError is a business-logic error returned inside a mutation result.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// graphQLError is one entry of the top-level GraphQL errors array.
type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// graphQLResponse is the GraphQL envelope returned with HTTP 200.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

// edges/nodes wire shapes, flattened into Product before use.

type variantConnection struct {
	Edges []struct {
		Node Variant `json:"node"`
	} `json:"edges"`
}

type imageConnection struct {
	Edges []struct {
		Node Image `json:"node"`
	} `json:"edges"`
}

type productNode struct {
	ID              string            `json:"id"`
	Handle          string            `json:"handle"`
	Title           string            `json:"title"`
	DescriptionHTML string            `json:"descriptionHtml"`
	Vendor          string            `json:"vendor"`
	ProductType     string            `json:"productType"`
	Tags            []string          `json:"tags"`
	Variants        variantConnection `json:"variants"`
	Images          imageConnection   `json:"images"`
}

func (n *productNode) toProduct() *Product {
	if n == nil {
		return nil
	}
	p := &Product{
		ID:              n.ID,
		Handle:          n.Handle,
		Title:           n.Title,
		DescriptionHTML: n.DescriptionHTML,
		Vendor:          n.Vendor,
		ProductType:     n.ProductType,
		Tags:            n.Tags,
	}
	for _, e := range n.Variants.Edges {
		p.Variants = append(p.Variants, e.Node)
	}
	for _, e := range n.Images.Edges {
		p.Images = append(p.Images, e.Node)
	}
	return p
}
