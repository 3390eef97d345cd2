package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is an editorial page served by the storefront.
type Article struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	Excerpt   string    `gorm:"column:excerpt"`
	Body      string    `gorm:"column:body;not null"`
	CoverURL  string    `gorm:"column:cover_url"`
	Published bool      `gorm:"column:published;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
