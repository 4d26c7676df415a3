package domain

import (
	"fmt"
	"time"
)

// BestSellingEntry is a curated, denormalized reference to a catalog product.
// Name, description, price, category and image are snapshots taken at
// promotion time; they do not track later catalog edits.
type BestSellingEntry struct {
	EntryID     string    `json:"id" dynamodbav:"entry_id"`
	ProductID   string    `json:"product_id" dynamodbav:"product_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Category    string    `json:"category" dynamodbav:"category"`
	Image       string    `json:"image" dynamodbav:"image"`
	SalesCount  int       `json:"sales_count" dynamodbav:"sales_count"`
	Discount    *float64  `json:"discount,omitempty" dynamodbav:"discount"`
	Label       string    `json:"label,omitempty" dynamodbav:"label"`
	Featured    bool      `json:"featured" dynamodbav:"featured"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// PromotionConflictError rejects a promotion for a product that is already
// curated. It carries the existing entry so callers get the full diagnostic
// payload rather than an id buried in a message.
type PromotionConflictError struct {
	Existing *BestSellingEntry
}

func (e *PromotionConflictError) Error() string {
	return fmt.Sprintf("product %s already promoted as entry %s", e.Existing.ProductID, e.Existing.EntryID)
}

func (e *PromotionConflictError) Unwrap() error { return ErrConflict }

// PromoteProductRequest creates a best-selling entry for an existing catalog
// product. Every optional field falls back to the live product value.
type PromoteProductRequest struct {
	ProductID   string   `json:"product_id" validate:"required"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	SalesCount  *int     `json:"sales_count" validate:"omitempty,gte=0"`
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Label       *string  `json:"label" validate:"omitempty,oneof='Best Seller' Featured 'New Arrival' 'Limited Edition' Trending"`
	Featured    *bool    `json:"featured"`
}

type UpdateBestSellingRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Label       *string  `json:"label" validate:"omitempty,oneof='Best Seller' Featured 'New Arrival' 'Limited Edition' Trending"`
	Featured    *bool    `json:"featured"`
}

type AdjustSalesRequest struct {
	Increment int `json:"increment"`
}
