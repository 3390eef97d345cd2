package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db/models"
)

// Repository encapsulates admin user persistence.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs an auth repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.AdminUser{}, err
	}
	return user, nil
}

func (r *gormRepository) Create(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}
