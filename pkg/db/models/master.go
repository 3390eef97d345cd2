package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Master is an installation technician listed in the public directory.
type Master struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Phone       string         `gorm:"column:phone"`
	Email       string         `gorm:"column:email"`
	City        string         `gorm:"column:city"`
	Specialties pq.StringArray `gorm:"column:specialties;type:text[]"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
