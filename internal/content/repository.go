package content

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db/models"
)

// Repository encapsulates article and advertisement persistence.
type Repository interface {
	ListArticles(ctx context.Context, publishedOnly bool) ([]models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (models.Article, error)
	GetArticleByID(ctx context.Context, id uuid.UUID) (models.Article, error)
	CreateArticle(ctx context.Context, article *models.Article) error
	UpdateArticle(ctx context.Context, article *models.Article) error
	DeleteArticle(ctx context.Context, id uuid.UUID) (bool, error)

	ListAdvertisements(ctx context.Context, activeOnly bool) ([]models.Advertisement, error)
	GetAdvertisement(ctx context.Context, id uuid.UUID) (models.Advertisement, error)
	CountActiveAdvertisements(ctx context.Context) (int64, error)
	CreateAdvertisement(ctx context.Context, ad *models.Advertisement) error
	UpdateAdvertisement(ctx context.Context, ad *models.Advertisement) error
	DeleteAdvertisement(ctx context.Context, id uuid.UUID) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a content repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListArticles(ctx context.Context, publishedOnly bool) ([]models.Article, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var articles []models.Article
	if err := query.Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *gormRepository) GetArticleBySlug(ctx context.Context, slug string) (models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		return models.Article{}, err
	}
	return article, nil
}

func (r *gormRepository) GetArticleByID(ctx context.Context, id uuid.UUID) (models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		return models.Article{}, err
	}
	return article, nil
}

func (r *gormRepository) CreateArticle(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *gormRepository) UpdateArticle(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *gormRepository) DeleteArticle(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Article{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) ListAdvertisements(ctx context.Context, activeOnly bool) ([]models.Advertisement, error) {
	query := r.db.WithContext(ctx).Model(&models.Advertisement{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var ads []models.Advertisement
	if err := query.Order("position ASC").Order("created_at ASC").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *gormRepository) GetAdvertisement(ctx context.Context, id uuid.UUID) (models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ad).Error; err != nil {
		return models.Advertisement{}, err
	}
	return ad, nil
}

func (r *gormRepository) CountActiveAdvertisements(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Advertisement{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) CreateAdvertisement(ctx context.Context, ad *models.Advertisement) error {
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *gormRepository) UpdateAdvertisement(ctx context.Context, ad *models.Advertisement) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *gormRepository) DeleteAdvertisement(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Advertisement{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
