package dto

type SyncRequestBody struct {
	RequestID string `json:"request_id"`
}

type SyncResult struct {
	Success    bool     `json:"success"`
	Synced     int      `json:"synced"`
	TotalItems int      `json:"total_items"`
	Errors     []string `json:"errors,omitempty"`
}

type ShippingAddress struct {
	Name  string `json:"name"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
	Phone string `json:"phone,omitempty"`
}

type CheckoutItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   string `json:"variant_id"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int32  `json:"quantity"`
}

type CheckoutRequest struct {
	SourceID        string          `json:"source_id"`
	Items           []CheckoutItem  `json:"items"`
	Amount          int64           `json:"amount"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Email           string          `json:"email"`
	UserID          string          `json:"user_id,omitempty"`
}

type CheckoutResponse struct {
	PaymentID string `json:"payment_id"`
	OrderID   uint   `json:"order_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateSyncRequestResponse struct {
	RequestID string `json:"request_id"`
	ExpiresAt string `json:"expires_at"`
}

type FeedEntryRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	MediaURL  string `json:"media_url"`
	LinkURL   string `json:"link_url"`
	Position  int    `json:"position"`
	Published bool   `json:"published"`
}

type MediaUploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type VariantResponse struct {
	VariationID string `json:"variation_id"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	SKU         string `json:"sku"`
	Stock       int32  `json:"stock"`
}

type ProductResponse struct {
	ID           uint              `json:"id"`
	CatalogID    string            `json:"catalog_id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Price        int64             `json:"price"` // minor units
	DisplayPrice string            `json:"display_price"`
	Currency     string            `json:"currency"`
	ImageURLs    []string          `json:"image_urls"`
	Category     string            `json:"category"`
	Variants     []VariantResponse `json:"variants"`
}

type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	VariantID   string `json:"variant_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int32  `json:"quantity"`
}

type OrderResponse struct {
	ID        uint                `json:"id"`
	PaymentID string              `json:"payment_id"`
	Status    string              `json:"status"`
	Total     int64               `json:"total"`
	Currency  string              `json:"currency"`
	CreatedAt string              `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}

type FeedEntryResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	MediaURL  string `json:"media_url"`
	LinkURL   string `json:"link_url"`
	Position  int    `json:"position"`
	Published bool   `json:"published"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}
