package content

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db"
	"github.com/securewatch/backend/pkg/db/models"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
)

// MaxActiveAdvertisements caps how many banners the storefront carousel shows.
const MaxActiveAdvertisements = 10

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Service exposes article and advertisement operations.
type Service interface {
	ListArticles(ctx context.Context, includeDrafts bool) ([]ArticleSummaryDTO, error)
	GetArticle(ctx context.Context, slug string) (ArticleDTO, error)
	CreateArticle(ctx context.Context, input CreateArticleInput) (ArticleDTO, error)
	UpdateArticle(ctx context.Context, id uuid.UUID, input UpdateArticleInput) (ArticleDTO, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error

	ListAdvertisements(ctx context.Context, includeInactive bool) ([]AdvertisementDTO, error)
	CreateAdvertisement(ctx context.Context, input CreateAdvertisementInput) (AdvertisementDTO, error)
	UpdateAdvertisement(ctx context.Context, id uuid.UUID, input UpdateAdvertisementInput) (AdvertisementDTO, error)
	DeleteAdvertisement(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a content service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListArticles(ctx context.Context, includeDrafts bool) ([]ArticleSummaryDTO, error) {
	articles, err := s.repo.ListArticles(ctx, !includeDrafts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list articles")
	}
	out := make([]ArticleSummaryDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleSummaryDTO(a))
	}
	return out, nil
}

func (s *service) GetArticle(ctx context.Context, slug string) (ArticleDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	article, err := s.repo.GetArticleBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "article not found")
		}
		return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get article")
	}
	return toArticleDTO(article), nil
}

func (s *service) CreateArticle(ctx context.Context, input CreateArticleInput) (ArticleDTO, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !slugPattern.MatchString(slug) {
		return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "slug must be lowercase words separated by hyphens")
	}

	published := false
	if input.Published != nil {
		published = *input.Published
	}

	article := models.Article{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		Slug:      slug,
		Excerpt:   input.Excerpt,
		Body:      input.Body,
		CoverURL:  input.CoverURL,
		Published: published,
	}

	if err := s.repo.CreateArticle(ctx, &article); err != nil {
		if db.IsUniqueViolation(err, "articles_slug_key") {
			return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already in use")
		}
		return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create article")
	}
	return toArticleDTO(article), nil
}

func (s *service) UpdateArticle(ctx context.Context, id uuid.UUID, input UpdateArticleInput) (ArticleDTO, error) {
	if id == uuid.Nil {
		return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "article id is required")
	}
	article, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "article not found")
		}
		return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get article")
	}

	if input.Title != nil {
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*input.Slug))
		if !slugPattern.MatchString(slug) {
			return ArticleDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "slug must be lowercase words separated by hyphens")
		}
		article.Slug = slug
	}
	if input.Excerpt != nil {
		article.Excerpt = *input.Excerpt
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	if input.CoverURL != nil {
		article.CoverURL = *input.CoverURL
	}
	if input.Published != nil {
		article.Published = *input.Published
	}

	if err := s.repo.UpdateArticle(ctx, &article); err != nil {
		if db.IsUniqueViolation(err, "articles_slug_key") {
			return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug already in use")
		}
		return ArticleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update article")
	}
	return toArticleDTO(article), nil
}

func (s *service) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "article id is required")
	}
	removed, err := s.repo.DeleteArticle(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete article")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
	}
	return nil
}

func (s *service) ListAdvertisements(ctx context.Context, includeInactive bool) ([]AdvertisementDTO, error) {
	ads, err := s.repo.ListAdvertisements(ctx, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list advertisements")
	}
	out := make([]AdvertisementDTO, 0, len(ads))
	for _, ad := range ads {
		out = append(out, toAdvertisementDTO(ad))
	}
	return out, nil
}

func (s *service) CreateAdvertisement(ctx context.Context, input CreateAdvertisementInput) (AdvertisementDTO, error) {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	if active {
		if err := s.ensureActiveCapacity(ctx); err != nil {
			return AdvertisementDTO{}, err
		}
	}

	ad := models.Advertisement{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		ImageURL:  input.ImageURL,
		TargetURL: input.TargetURL,
		Position:  input.Position,
		IsActive:  active,
	}
	if err := s.repo.CreateAdvertisement(ctx, &ad); err != nil {
		return AdvertisementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create advertisement")
	}
	return toAdvertisementDTO(ad), nil
}

func (s *service) UpdateAdvertisement(ctx context.Context, id uuid.UUID, input UpdateAdvertisementInput) (AdvertisementDTO, error) {
	if id == uuid.Nil {
		return AdvertisementDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "advertisement id is required")
	}
	ad, err := s.repo.GetAdvertisement(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdvertisementDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "advertisement not found")
		}
		return AdvertisementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get advertisement")
	}

	// Activating a previously inactive banner consumes a slot.
	if input.IsActive != nil && *input.IsActive && !ad.IsActive {
		if err := s.ensureActiveCapacity(ctx); err != nil {
			return AdvertisementDTO{}, err
		}
	}

	if input.Title != nil {
		ad.Title = strings.TrimSpace(*input.Title)
	}
	if input.ImageURL != nil {
		ad.ImageURL = *input.ImageURL
	}
	if input.TargetURL != nil {
		ad.TargetURL = *input.TargetURL
	}
	if input.Position != nil {
		ad.Position = *input.Position
	}
	if input.IsActive != nil {
		ad.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateAdvertisement(ctx, &ad); err != nil {
		return AdvertisementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update advertisement")
	}
	return toAdvertisementDTO(ad), nil
}

func (s *service) DeleteAdvertisement(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "advertisement id is required")
	}
	removed, err := s.repo.DeleteAdvertisement(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete advertisement")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "advertisement not found")
	}
	return nil
}

func (s *service) ensureActiveCapacity(ctx context.Context) error {
	count, err := s.repo.CountActiveAdvertisements(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active advertisements")
	}
	if count >= MaxActiveAdvertisements {
		return pkgerrors.New(pkgerrors.CodeConflict, "active advertisement limit reached")
	}
	return nil
}
