package model

// Wire types for the external catalog API. Listing returns a flat array of
// objects discriminated by Type (ITEM, IMAGE, CATEGORY) plus an opaque
// pagination cursor.

const (
	CatalogObjectItem     = "ITEM"
	CatalogObjectImage    = "IMAGE"
	CatalogObjectCategory = "CATEGORY"
)

type CatalogObject struct {
	Type         string        `json:"type"`
	ID           string        `json:"id"`
	ItemData     *ItemData     `json:"item_data,omitempty"`
	ImageData    *ImageData    `json:"image_data,omitempty"`
	CategoryData *CategoryData `json:"category_data,omitempty"`
}

type ItemData struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	ImageIDs    []string        `json:"image_ids"`
	Variations  []ItemVariation `json:"variations"`
}

type ItemVariation struct {
	ID            string             `json:"id"`
	VariationData *ItemVariationData `json:"item_variation_data,omitempty"`
}

type ItemVariationData struct {
	Name       string `json:"name"` // size label
	SKU        string `json:"sku"`
	PriceMoney *Money `json:"price_money,omitempty"`
}

type Money struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

type ImageData struct {
	URL string `json:"url"`
}

type CategoryData struct {
	Name string `json:"name"`
}

type CatalogPage struct {
	Objects []CatalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
}

// InventoryCount is one entry of the batched inventory lookup. Only counts
// whose State is "IN_STOCK" are written back to variants.
type InventoryCount struct {
	CatalogObjectID string `json:"catalog_object_id"` // variation id
	State           string `json:"state"`
	Quantity        string `json:"quantity"` // decimal string per the API
}

const InventoryStateInStock = "IN_STOCK"
