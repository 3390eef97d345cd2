package models

import (
	"time"

	"github.com/google/uuid"
)

// SupportBrand is a camera brand the service desk takes in for repair.
type SupportBrand struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null;uniqueIndex"`
	LogoURL    string    `gorm:"column:logo_url"`
	SupportURL string    `gorm:"column:support_url"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
