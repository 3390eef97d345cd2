package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreLocation is a physical retail point shown on the contacts page.
type StoreLocation struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Address      string    `gorm:"column:address;not null"`
	City         string    `gorm:"column:city"`
	Phone        string    `gorm:"column:phone"`
	Lat          float64   `gorm:"column:lat"`
	Lng          float64   `gorm:"column:lng"`
	WorkingHours string    `gorm:"column:working_hours"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
