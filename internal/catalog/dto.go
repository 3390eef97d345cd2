package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/securewatch/backend/pkg/db/models"
)

// ProductDTO is the catalog payload served to storefront and admin clients.
type ProductDTO struct {
	ID               uuid.UUID       `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category"`
	Brand            string          `json:"brand"`
	ImageURL         string          `json:"image_url"`
	InStock          bool            `json:"in_stock"`
	Features         []string        `json:"features"`
	AdditionalImages []string        `json:"additional_images"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ListFilter narrows a catalog page.
type ListFilter struct {
	Category string
	Brand    string
	InStock  *bool
	Search   string
}

// ListRequest is a cursor-paged catalog query.
type ListRequest struct {
	Filter ListFilter
	Limit  int
	Cursor string
}

// ListResult is one catalog page with the cursor for the next one.
type ListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// CreateProductInput is the admin create payload.
type CreateProductInput struct {
	SKU              string          `json:"sku" validate:"required,max=64"`
	Name             string          `json:"name" validate:"required,max=255"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	Category         string          `json:"category" validate:"required,max=100"`
	Brand            string          `json:"brand" validate:"max=100"`
	ImageURL         string          `json:"image_url" validate:"omitempty,url"`
	InStock          *bool           `json:"in_stock"`
	Features         []string        `json:"features"`
	AdditionalImages []string        `json:"additional_images" validate:"omitempty,dive,url"`
}

// UpdateProductInput carries partial admin updates; nil fields stay untouched.
type UpdateProductInput struct {
	SKU              *string          `json:"sku" validate:"omitempty,max=64"`
	Name             *string          `json:"name" validate:"omitempty,max=255"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Category         *string          `json:"category" validate:"omitempty,max=100"`
	Brand            *string          `json:"brand" validate:"omitempty,max=100"`
	ImageURL         *string          `json:"image_url" validate:"omitempty,url"`
	InStock          *bool            `json:"in_stock"`
	Features         []string         `json:"features"`
	AdditionalImages []string         `json:"additional_images" validate:"omitempty,dive,url"`
}

func toProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Category:         p.Category,
		Brand:            p.Brand,
		ImageURL:         p.ImageURL,
		InStock:          p.InStock,
		Features:         p.Features,
		AdditionalImages: p.AdditionalImages,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
