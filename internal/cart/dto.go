package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineProduct is the product snapshot joined onto a cart line.
type LineProduct struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	ImageURL string          `json:"image_url"`
	InStock  bool            `json:"in_stock"`
}

// LineDTO is one cart row joined with its product.
type LineDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Product   LineProduct     `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// CartDTO is the full cart payload returned to the storefront.
type CartDTO struct {
	Items []LineDTO       `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ItemDTO is the single-row payload returned by add/update.
type ItemDTO struct {
	ID        uuid.UUID `json:"id"`
	SessionID string    `json:"session_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}
