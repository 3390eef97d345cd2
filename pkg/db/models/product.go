package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing maintained by the admin panel. Cart rows
// reference it read-only.
type Product struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU              string          `gorm:"column:sku;not null"`
	Name             string          `gorm:"column:name;not null"`
	Description      string          `gorm:"column:description"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Category         string          `gorm:"column:category;not null"`
	Brand            string          `gorm:"column:brand"`
	ImageURL         string          `gorm:"column:image_url"`
	InStock          bool            `gorm:"column:in_stock;not null;default:true"`
	Features         pq.StringArray  `gorm:"column:features;type:text[]"`
	AdditionalImages pq.StringArray  `gorm:"column:additional_images;type:text[]"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
