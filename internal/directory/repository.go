package directory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db/models"
)

// Repository encapsulates directory persistence: masters, store locations and
// supported service brands.
type Repository interface {
	ListMasters(ctx context.Context, city string, activeOnly bool) ([]models.Master, error)
	GetMaster(ctx context.Context, id uuid.UUID) (models.Master, error)
	CountActiveMasters(ctx context.Context) (int64, error)
	CreateMaster(ctx context.Context, master *models.Master) error
	UpdateMaster(ctx context.Context, master *models.Master) error
	DeleteMaster(ctx context.Context, id uuid.UUID) (bool, error)

	ListStoreLocations(ctx context.Context) ([]models.StoreLocation, error)
	GetStoreLocation(ctx context.Context, id uuid.UUID) (models.StoreLocation, error)
	CreateStoreLocation(ctx context.Context, location *models.StoreLocation) error
	UpdateStoreLocation(ctx context.Context, location *models.StoreLocation) error
	DeleteStoreLocation(ctx context.Context, id uuid.UUID) (bool, error)

	ListSupportBrands(ctx context.Context) ([]models.SupportBrand, error)
	GetSupportBrand(ctx context.Context, id uuid.UUID) (models.SupportBrand, error)
	CreateSupportBrand(ctx context.Context, brand *models.SupportBrand) error
	UpdateSupportBrand(ctx context.Context, brand *models.SupportBrand) error
	DeleteSupportBrand(ctx context.Context, id uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a directory repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListMasters(ctx context.Context, city string, activeOnly bool) ([]models.Master, error) {
	query := r.db.WithContext(ctx).Model(&models.Master{})
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var masters []models.Master
	if err := query.Order("name ASC").Find(&masters).Error; err != nil {
		return nil, err
	}
	return masters, nil
}

func (r *gormRepository) GetMaster(ctx context.Context, id uuid.UUID) (models.Master, error) {
	var master models.Master
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&master).Error; err != nil {
		return models.Master{}, err
	}
	return master, nil
}

func (r *gormRepository) CountActiveMasters(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Master{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) CreateMaster(ctx context.Context, master *models.Master) error {
	return r.db.WithContext(ctx).Create(master).Error
}

func (r *gormRepository) UpdateMaster(ctx context.Context, master *models.Master) error {
	return r.db.WithContext(ctx).Save(master).Error
}

func (r *gormRepository) DeleteMaster(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Master{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) ListStoreLocations(ctx context.Context) ([]models.StoreLocation, error) {
	var locations []models.StoreLocation
	err := r.db.WithContext(ctx).
		Order("city ASC").
		Order("name ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *gormRepository) GetStoreLocation(ctx context.Context, id uuid.UUID) (models.StoreLocation, error) {
	var location models.StoreLocation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return models.StoreLocation{}, err
	}
	return location, nil
}

func (r *gormRepository) CreateStoreLocation(ctx context.Context, location *models.StoreLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *gormRepository) UpdateStoreLocation(ctx context.Context, location *models.StoreLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *gormRepository) DeleteStoreLocation(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StoreLocation{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) ListSupportBrands(ctx context.Context) ([]models.SupportBrand, error) {
	var brands []models.SupportBrand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *gormRepository) GetSupportBrand(ctx context.Context, id uuid.UUID) (models.SupportBrand, error) {
	var brand models.SupportBrand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		return models.SupportBrand{}, err
	}
	return brand, nil
}

func (r *gormRepository) CreateSupportBrand(ctx context.Context, brand *models.SupportBrand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *gormRepository) UpdateSupportBrand(ctx context.Context, brand *models.SupportBrand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *gormRepository) DeleteSupportBrand(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SupportBrand{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
