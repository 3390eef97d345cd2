package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/securewatch/backend/pkg/db/models"
)

// MasterDTO is one installation technician in the public directory.
type MasterDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	City        string    `json:"city"`
	Specialties []string  `json:"specialties"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// StoreLocationDTO is one retail point for the contacts page.
type StoreLocationDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Phone        string    `json:"phone"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	WorkingHours string    `json:"working_hours"`
}

// SupportBrandDTO is one brand the service desk accepts.
type SupportBrandDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	LogoURL    string    `json:"logo_url"`
	SupportURL string    `json:"support_url"`
}

// CreateMasterInput is the admin create payload.
type CreateMasterInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Phone       string   `json:"phone" validate:"max=32"`
	Email       string   `json:"email" validate:"omitempty,email"`
	City        string   `json:"city" validate:"max=100"`
	Specialties []string `json:"specialties"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateMasterInput carries partial admin updates.
type UpdateMasterInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Phone       *string  `json:"phone" validate:"omitempty,max=32"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	City        *string  `json:"city" validate:"omitempty,max=100"`
	Specialties []string `json:"specialties"`
	IsActive    *bool    `json:"is_active"`
}

// CreateStoreLocationInput is the admin create payload.
type CreateStoreLocationInput struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Address      string  `json:"address" validate:"required,max=512"`
	City         string  `json:"city" validate:"max=100"`
	Phone        string  `json:"phone" validate:"max=32"`
	Lat          float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng          float64 `json:"lng" validate:"gte=-180,lte=180"`
	WorkingHours string  `json:"working_hours" validate:"max=255"`
}

// UpdateStoreLocationInput carries partial admin updates.
type UpdateStoreLocationInput struct {
	Name         *string  `json:"name" validate:"omitempty,max=255"`
	Address      *string  `json:"address" validate:"omitempty,max=512"`
	City         *string  `json:"city" validate:"omitempty,max=100"`
	Phone        *string  `json:"phone" validate:"omitempty,max=32"`
	Lat          *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng          *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	WorkingHours *string  `json:"working_hours" validate:"omitempty,max=255"`
}

// CreateSupportBrandInput is the admin create payload.
type CreateSupportBrandInput struct {
	Name       string `json:"name" validate:"required,max=255"`
	LogoURL    string `json:"logo_url" validate:"omitempty,url"`
	SupportURL string `json:"support_url" validate:"omitempty,url"`
}

// UpdateSupportBrandInput carries partial admin updates.
type UpdateSupportBrandInput struct {
	Name       *string `json:"name" validate:"omitempty,max=255"`
	LogoURL    *string `json:"logo_url" validate:"omitempty,url"`
	SupportURL *string `json:"support_url" validate:"omitempty,url"`
}

func toMasterDTO(m models.Master) MasterDTO {
	return MasterDTO{
		ID:          m.ID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		City:        m.City,
		Specialties: m.Specialties,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func toStoreLocationDTO(l models.StoreLocation) StoreLocationDTO {
	return StoreLocationDTO{
		ID:           l.ID,
		Name:         l.Name,
		Address:      l.Address,
		City:         l.City,
		Phone:        l.Phone,
		Lat:          l.Lat,
		Lng:          l.Lng,
		WorkingHours: l.WorkingHours,
	}
}

func toSupportBrandDTO(b models.SupportBrand) SupportBrandDTO {
	return SupportBrandDTO{
		ID:         b.ID,
		Name:       b.Name,
		LogoURL:    b.LogoURL,
		SupportURL: b.SupportURL,
	}
}
