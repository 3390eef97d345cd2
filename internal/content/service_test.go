package content

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/securewatch/backend/pkg/db/models"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
)

type fakeRepository struct {
	articles map[uuid.UUID]models.Article
	ads      map[uuid.UUID]models.Advertisement
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		articles: map[uuid.UUID]models.Article{},
		ads:      map[uuid.UUID]models.Advertisement{},
	}
}

func (f *fakeRepository) ListArticles(_ context.Context, publishedOnly bool) ([]models.Article, error) {
	var out []models.Article
	for _, a := range f.articles {
		if publishedOnly && !a.Published {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepository) GetArticleBySlug(_ context.Context, slug string) (models.Article, error) {
	for _, a := range f.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return models.Article{}, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetArticleByID(_ context.Context, id uuid.UUID) (models.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return models.Article{}, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeRepository) CreateArticle(_ context.Context, article *models.Article) error {
	for _, a := range f.articles {
		if a.Slug == article.Slug {
			return &pgconn.PgError{Code: "23505", ConstraintName: "articles_slug_key"}
		}
	}
	f.articles[article.ID] = *article
	return nil
}

func (f *fakeRepository) UpdateArticle(_ context.Context, article *models.Article) error {
	for id, a := range f.articles {
		if id != article.ID && a.Slug == article.Slug {
			return &pgconn.PgError{Code: "23505", ConstraintName: "articles_slug_key"}
		}
	}
	f.articles[article.ID] = *article
	return nil
}

func (f *fakeRepository) DeleteArticle(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.articles[id]; !ok {
		return false, nil
	}
	delete(f.articles, id)
	return true, nil
}

func (f *fakeRepository) ListAdvertisements(_ context.Context, activeOnly bool) ([]models.Advertisement, error) {
	var out []models.Advertisement
	for _, ad := range f.ads {
		if activeOnly && !ad.IsActive {
			continue
		}
		out = append(out, ad)
	}
	return out, nil
}

func (f *fakeRepository) GetAdvertisement(_ context.Context, id uuid.UUID) (models.Advertisement, error) {
	ad, ok := f.ads[id]
	if !ok {
		return models.Advertisement{}, gorm.ErrRecordNotFound
	}
	return ad, nil
}

func (f *fakeRepository) CountActiveAdvertisements(_ context.Context) (int64, error) {
	var count int64
	for _, ad := range f.ads {
		if ad.IsActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) CreateAdvertisement(_ context.Context, ad *models.Advertisement) error {
	f.ads[ad.ID] = *ad
	return nil
}

func (f *fakeRepository) UpdateAdvertisement(_ context.Context, ad *models.Advertisement) error {
	f.ads[ad.ID] = *ad
	return nil
}

func (f *fakeRepository) DeleteAdvertisement(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.ads[id]; !ok {
		return false, nil
	}
	delete(f.ads, id)
	return true, nil
}

func newTestService(t *testing.T) (Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func TestCreateArticleNormalizesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		Title: "Choosing a PoE switch",
		Slug:  "  Choosing-A-Poe-Switch  ",
		Body:  "body",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "choosing-a-poe-switch" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}
	if created.Published {
		t.Fatal("expected draft by default")
	}
}

func TestCreateArticleRejectsBadSlug(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		Title: "x",
		Slug:  "not a slug!",
		Body:  "body",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateArticleDuplicateSlugConflicts(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		Title: "First", Slug: "guide", Body: "body",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		Title: "Second", Slug: "guide", Body: "body",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListArticlesHidesDrafts(t *testing.T) {
	svc, _ := newTestService(t)

	published := true
	if _, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		Title: "Live", Slug: "live", Body: "body", Published: &published,
	}); err != nil {
		t.Fatalf("create live: %v", err)
	}
	if _, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		Title: "Draft", Slug: "draft", Body: "body",
	}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	publicList, err := svc.ListArticles(context.Background(), false)
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if len(publicList) != 1 || publicList[0].Slug != "live" {
		t.Fatalf("expected only the published article, got %+v", publicList)
	}

	adminList, err := svc.ListArticles(context.Background(), true)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminList) != 2 {
		t.Fatalf("expected drafts in admin list, got %d", len(adminList))
	}
}

func TestGetArticleBySlug(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		Title: "Guide", Slug: "guide", Body: "full body",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	article, err := svc.GetArticle(context.Background(), "guide")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if article.Body != "full body" {
		t.Fatalf("unexpected body %q", article.Body)
	}

	_, err = svc.GetArticle(context.Background(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdvertisementActiveCap(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < MaxActiveAdvertisements; i++ {
		_, err := svc.CreateAdvertisement(context.Background(), CreateAdvertisementInput{
			Title:    fmt.Sprintf("Banner %d", i),
			ImageURL: "https://cdn.example.com/banner.png",
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := svc.CreateAdvertisement(context.Background(), CreateAdvertisementInput{
		Title:    "One too many",
		ImageURL: "https://cdn.example.com/banner.png",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict at the cap, got %v", err)
	}

	// Inactive banners do not consume a slot.
	inactive := false
	if _, err := svc.CreateAdvertisement(context.Background(), CreateAdvertisementInput{
		Title:    "Parked",
		ImageURL: "https://cdn.example.com/banner.png",
		IsActive: &inactive,
	}); err != nil {
		t.Fatalf("create inactive: %v", err)
	}
}

func TestActivatingAdvertisementRespectsCap(t *testing.T) {
	svc, _ := newTestService(t)

	inactive := false
	parked, err := svc.CreateAdvertisement(context.Background(), CreateAdvertisementInput{
		Title:    "Parked",
		ImageURL: "https://cdn.example.com/banner.png",
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("create parked: %v", err)
	}

	for i := 0; i < MaxActiveAdvertisements; i++ {
		if _, err := svc.CreateAdvertisement(context.Background(), CreateAdvertisementInput{
			Title:    fmt.Sprintf("Banner %d", i),
			ImageURL: "https://cdn.example.com/banner.png",
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	active := true
	_, err = svc.UpdateAdvertisement(context.Background(), parked.ID, UpdateAdvertisementInput{IsActive: &active})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict when activating over the cap, got %v", err)
	}

	// Updating an already-active banner does not re-check the cap.
	ads, err := svc.ListAdvertisements(context.Background(), false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	title := "Renamed"
	if _, err := svc.UpdateAdvertisement(context.Background(), ads[0].ID, UpdateAdvertisementInput{Title: &title}); err != nil {
		t.Fatalf("rename active banner: %v", err)
	}
}

func TestDeleteAdvertisement(t *testing.T) {
	svc, _ := newTestService(t)

	ad, err := svc.CreateAdvertisement(context.Background(), CreateAdvertisementInput{
		Title:    "Banner",
		ImageURL: "https://cdn.example.com/banner.png",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteAdvertisement(context.Background(), ad.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.DeleteAdvertisement(context.Background(), ad.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}
