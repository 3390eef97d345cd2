package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/securewatch/backend/pkg/db/models"
)

// ArticleDTO is the editorial payload served to clients.
type ArticleDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Body      string    `json:"body"`
	CoverURL  string    `json:"cover_url"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleSummaryDTO omits the body for list views.
type ArticleSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	CoverURL  string    `json:"cover_url"`
	CreatedAt time.Time `json:"created_at"`
}

// AdvertisementDTO is one storefront banner.
type AdvertisementDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	TargetURL string    `json:"target_url"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateArticleInput is the admin create payload.
type CreateArticleInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Slug     string `json:"slug" validate:"required,max=255"`
	Excerpt  string `json:"excerpt"`
	Body     string `json:"body" validate:"required"`
	CoverURL string `json:"cover_url" validate:"omitempty,url"`
	// Published defaults to false so drafts stay off the storefront.
	Published *bool `json:"published"`
}

// UpdateArticleInput carries partial admin updates; nil fields stay untouched.
type UpdateArticleInput struct {
	Title     *string `json:"title" validate:"omitempty,max=255"`
	Slug      *string `json:"slug" validate:"omitempty,max=255"`
	Excerpt   *string `json:"excerpt"`
	Body      *string `json:"body"`
	CoverURL  *string `json:"cover_url" validate:"omitempty,url"`
	Published *bool   `json:"published"`
}

// CreateAdvertisementInput is the admin banner create payload.
type CreateAdvertisementInput struct {
	Title     string `json:"title" validate:"required,max=255"`
	ImageURL  string `json:"image_url" validate:"required,url"`
	TargetURL string `json:"target_url" validate:"omitempty,url"`
	Position  int    `json:"position" validate:"gte=0"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateAdvertisementInput carries partial admin updates.
type UpdateAdvertisementInput struct {
	Title     *string `json:"title" validate:"omitempty,max=255"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url"`
	TargetURL *string `json:"target_url" validate:"omitempty,url"`
	Position  *int    `json:"position" validate:"omitempty,gte=0"`
	IsActive  *bool   `json:"is_active"`
}

func toArticleDTO(a models.Article) ArticleDTO {
	return ArticleDTO{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Excerpt:   a.Excerpt,
		Body:      a.Body,
		CoverURL:  a.CoverURL,
		Published: a.Published,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toArticleSummaryDTO(a models.Article) ArticleSummaryDTO {
	return ArticleSummaryDTO{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Excerpt:   a.Excerpt,
		CoverURL:  a.CoverURL,
		CreatedAt: a.CreatedAt,
	}
}

func toAdvertisementDTO(a models.Advertisement) AdvertisementDTO {
	return AdvertisementDTO{
		ID:        a.ID,
		Title:     a.Title,
		ImageURL:  a.ImageURL,
		TargetURL: a.TargetURL,
		Position:  a.Position,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
