package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db"
	"github.com/securewatch/backend/pkg/db/models"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
)

// MaxActiveMasters caps the public technician directory.
const MaxActiveMasters = 50

// Service exposes the directory operations: public reads plus admin CRUD.
type Service interface {
	ListMasters(ctx context.Context, city string, includeInactive bool) ([]MasterDTO, error)
	CreateMaster(ctx context.Context, input CreateMasterInput) (MasterDTO, error)
	UpdateMaster(ctx context.Context, id uuid.UUID, input UpdateMasterInput) (MasterDTO, error)
	DeleteMaster(ctx context.Context, id uuid.UUID) error

	ListStoreLocations(ctx context.Context) ([]StoreLocationDTO, error)
	CreateStoreLocation(ctx context.Context, input CreateStoreLocationInput) (StoreLocationDTO, error)
	UpdateStoreLocation(ctx context.Context, id uuid.UUID, input UpdateStoreLocationInput) (StoreLocationDTO, error)
	DeleteStoreLocation(ctx context.Context, id uuid.UUID) error

	ListSupportBrands(ctx context.Context) ([]SupportBrandDTO, error)
	CreateSupportBrand(ctx context.Context, input CreateSupportBrandInput) (SupportBrandDTO, error)
	UpdateSupportBrand(ctx context.Context, id uuid.UUID, input UpdateSupportBrandInput) (SupportBrandDTO, error)
	DeleteSupportBrand(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a directory service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "directory repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListMasters(ctx context.Context, city string, includeInactive bool) ([]MasterDTO, error) {
	masters, err := s.repo.ListMasters(ctx, strings.TrimSpace(city), !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list masters")
	}
	out := make([]MasterDTO, 0, len(masters))
	for _, m := range masters {
		out = append(out, toMasterDTO(m))
	}
	return out, nil
}

func (s *service) CreateMaster(ctx context.Context, input CreateMasterInput) (MasterDTO, error) {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	if active {
		if err := s.ensureMasterCapacity(ctx); err != nil {
			return MasterDTO{}, err
		}
	}

	master := models.Master{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.TrimSpace(input.Email),
		City:        strings.TrimSpace(input.City),
		Specialties: input.Specialties,
		IsActive:    active,
	}
	if master.Specialties == nil {
		master.Specialties = []string{}
	}

	if err := s.repo.CreateMaster(ctx, &master); err != nil {
		return MasterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create master")
	}
	return toMasterDTO(master), nil
}

func (s *service) UpdateMaster(ctx context.Context, id uuid.UUID, input UpdateMasterInput) (MasterDTO, error) {
	if id == uuid.Nil {
		return MasterDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "master id is required")
	}
	master, err := s.repo.GetMaster(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MasterDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "master not found")
		}
		return MasterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get master")
	}

	if input.IsActive != nil && *input.IsActive && !master.IsActive {
		if err := s.ensureMasterCapacity(ctx); err != nil {
			return MasterDTO{}, err
		}
	}

	if input.Name != nil {
		master.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		master.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		master.Email = strings.TrimSpace(*input.Email)
	}
	if input.City != nil {
		master.City = strings.TrimSpace(*input.City)
	}
	if input.Specialties != nil {
		master.Specialties = input.Specialties
	}
	if input.IsActive != nil {
		master.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateMaster(ctx, &master); err != nil {
		return MasterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update master")
	}
	return toMasterDTO(master), nil
}

func (s *service) DeleteMaster(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "master id is required")
	}
	removed, err := s.repo.DeleteMaster(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete master")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "master not found")
	}
	return nil
}

func (s *service) ListStoreLocations(ctx context.Context) ([]StoreLocationDTO, error) {
	locations, err := s.repo.ListStoreLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store locations")
	}
	out := make([]StoreLocationDTO, 0, len(locations))
	for _, l := range locations {
		out = append(out, toStoreLocationDTO(l))
	}
	return out, nil
}

func (s *service) CreateStoreLocation(ctx context.Context, input CreateStoreLocationInput) (StoreLocationDTO, error) {
	location := models.StoreLocation{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		Phone:        strings.TrimSpace(input.Phone),
		Lat:          input.Lat,
		Lng:          input.Lng,
		WorkingHours: input.WorkingHours,
	}
	if err := s.repo.CreateStoreLocation(ctx, &location); err != nil {
		return StoreLocationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store location")
	}
	return toStoreLocationDTO(location), nil
}

func (s *service) UpdateStoreLocation(ctx context.Context, id uuid.UUID, input UpdateStoreLocationInput) (StoreLocationDTO, error) {
	if id == uuid.Nil {
		return StoreLocationDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "store location id is required")
	}
	location, err := s.repo.GetStoreLocation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StoreLocationDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "store location not found")
		}
		return StoreLocationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get store location")
	}

	if input.Name != nil {
		location.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		location.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		location.City = strings.TrimSpace(*input.City)
	}
	if input.Phone != nil {
		location.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Lat != nil {
		location.Lat = *input.Lat
	}
	if input.Lng != nil {
		location.Lng = *input.Lng
	}
	if input.WorkingHours != nil {
		location.WorkingHours = *input.WorkingHours
	}

	if err := s.repo.UpdateStoreLocation(ctx, &location); err != nil {
		return StoreLocationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store location")
	}
	return toStoreLocationDTO(location), nil
}

func (s *service) DeleteStoreLocation(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store location id is required")
	}
	removed, err := s.repo.DeleteStoreLocation(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store location")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "store location not found")
	}
	return nil
}

func (s *service) ListSupportBrands(ctx context.Context) ([]SupportBrandDTO, error) {
	brands, err := s.repo.ListSupportBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list support brands")
	}
	out := make([]SupportBrandDTO, 0, len(brands))
	for _, b := range brands {
		out = append(out, toSupportBrandDTO(b))
	}
	return out, nil
}

func (s *service) CreateSupportBrand(ctx context.Context, input CreateSupportBrandInput) (SupportBrandDTO, error) {
	brand := models.SupportBrand{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		LogoURL:    input.LogoURL,
		SupportURL: input.SupportURL,
	}
	if err := s.repo.CreateSupportBrand(ctx, &brand); err != nil {
		if db.IsUniqueViolation(err, "support_brands_name_key") {
			return SupportBrandDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "brand already listed")
		}
		return SupportBrandDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create support brand")
	}
	return toSupportBrandDTO(brand), nil
}

func (s *service) UpdateSupportBrand(ctx context.Context, id uuid.UUID, input UpdateSupportBrandInput) (SupportBrandDTO, error) {
	if id == uuid.Nil {
		return SupportBrandDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "support brand id is required")
	}
	brand, err := s.repo.GetSupportBrand(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SupportBrandDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "support brand not found")
		}
		return SupportBrandDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get support brand")
	}

	if input.Name != nil {
		brand.Name = strings.TrimSpace(*input.Name)
	}
	if input.LogoURL != nil {
		brand.LogoURL = *input.LogoURL
	}
	if input.SupportURL != nil {
		brand.SupportURL = *input.SupportURL
	}

	if err := s.repo.UpdateSupportBrand(ctx, &brand); err != nil {
		if db.IsUniqueViolation(err, "support_brands_name_key") {
			return SupportBrandDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "brand already listed")
		}
		return SupportBrandDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update support brand")
	}
	return toSupportBrandDTO(brand), nil
}

func (s *service) DeleteSupportBrand(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "support brand id is required")
	}
	removed, err := s.repo.DeleteSupportBrand(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete support brand")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "support brand not found")
	}
	return nil
}

func (s *service) ensureMasterCapacity(ctx context.Context) error {
	count, err := s.repo.CountActiveMasters(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active masters")
	}
	if count >= MaxActiveMasters {
		return pkgerrors.New(pkgerrors.CodeConflict, "active master limit reached")
	}
	return nil
}
