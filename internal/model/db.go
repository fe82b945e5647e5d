package model

import "time"

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	CatalogID   string `gorm:"size:64;uniqueIndex;not null"` // external catalog object id
	Name        string `gorm:"size:255;not null"`
	Slug        string `gorm:"size:255;index;not null"`
	Description string `gorm:"type:text"`
	Price       int64  `gorm:"not null"` // minor currency units, first variation's price
	Currency    string `gorm:"size:8;not null"`
	ImageURLs   string `gorm:"type:text"` // JSON-encoded list
	Category    string `gorm:"size:128;index;not null"`
	Active      bool   `gorm:"not null;default:true"`
	SyncedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []ProductVariant `gorm:"foreignKey:ProductID;references:ID"`
}

type ProductVariant struct {
	ID          uint   `gorm:"primaryKey"`
	VariationID string `gorm:"size:64;uniqueIndex;not null"` // external variation id
	ProductID   uint   `gorm:"index;not null"`
	Size        string `gorm:"size:32;not null"`
	Color       string `gorm:"size:32;not null"`
	SKU         string `gorm:"size:64;not null"`
	Stock       int32  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SyncRequest is a single-use, time-boxed authorization nonce for catalog
// sync. Created pending by an authenticated admin, consumed exactly once.
type SyncRequest struct {
	ID        string `gorm:"primaryKey;size:36;not null"` // uuid
	UserID    string `gorm:"size:64;index;not null"`
	Status    string `gorm:"size:16;index;not null"` // pending, processing, completed, failed
	Result    string `gorm:"type:text"`              // JSON result or error detail
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	SyncStatusPending    = "pending"
	SyncStatusProcessing = "processing"
	SyncStatusCompleted  = "completed"
	SyncStatusFailed     = "failed"
)

type Order struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index"` // empty for guest checkout
	PaymentID string `gorm:"size:64;index;not null"`
	Status    string `gorm:"size:16;index;not null"` // paid
	Email     string `gorm:"size:255"`
	Total     int64  `gorm:"not null"` // minor units
	Currency  string `gorm:"size:8;not null"`
	ShipName  string `gorm:"size:255"`
	ShipLine1 string `gorm:"size:255"`
	ShipLine2 string `gorm:"size:255"`
	ShipCity  string `gorm:"size:128"`
	ShipState string `gorm:"size:64"`
	ShipZip   string `gorm:"size:32"`
	ShipPhone string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

type OrderItem struct {
	ID          uint   `gorm:"primaryKey"`
	OrderID     uint   `gorm:"index;not null"`
	ProductID   string `gorm:"size:64;not null"` // denormalized external ids
	VariantID   string `gorm:"size:64;not null"`
	ProductName string `gorm:"size:255;not null"`
	Size        string `gorm:"size:32"`
	Color       string `gorm:"size:32"`
	UnitPrice   int64  `gorm:"not null"`
	Quantity    int32  `gorm:"not null"`
	CreatedAt   time.Time
}

// Profile carries the admin flag checked by the sync nonce gate.
type Profile struct {
	UserID    string `gorm:"primaryKey;size:64;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeedEntry is one editorial block on the homepage feed.
type FeedEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	Body      string `gorm:"type:text"`
	MediaURL  string `gorm:"type:text"`
	LinkURL   string `gorm:"type:text"`
	Position  int    `gorm:"index;not null;default:0"`
	Published bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
