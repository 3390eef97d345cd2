package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	authsvc "github.com/securewatch/backend/internal/auth"
	cartsvc "github.com/securewatch/backend/internal/cart"
	catalogsvc "github.com/securewatch/backend/internal/catalog"
	chatsvc "github.com/securewatch/backend/internal/chat"
	contentsvc "github.com/securewatch/backend/internal/content"
	directorysvc "github.com/securewatch/backend/internal/directory"
	estimatorsvc "github.com/securewatch/backend/internal/estimator"
	"github.com/securewatch/backend/pkg/config"
	"github.com/securewatch/backend/pkg/logger"
)

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, authsvc.LoginInput) (authsvc.LoginResult, error) {
	return authsvc.LoginResult{}, nil
}
func (stubAuthService) Register(context.Context, authsvc.RegisterInput) (authsvc.UserDTO, error) {
	return authsvc.UserDTO{}, nil
}
func (stubAuthService) Logout(context.Context, string) error { return nil }

type stubCatalogService struct{}

func (stubCatalogService) List(context.Context, catalogsvc.ListRequest) (catalogsvc.ListResult, error) {
	return catalogsvc.ListResult{Products: []catalogsvc.ProductDTO{}}, nil
}
func (stubCatalogService) Get(context.Context, uuid.UUID) (catalogsvc.ProductDTO, error) {
	return catalogsvc.ProductDTO{}, nil
}
func (stubCatalogService) Categories(context.Context) ([]string, error) { return nil, nil }
func (stubCatalogService) Brands(context.Context) ([]string, error)     { return nil, nil }
func (stubCatalogService) Create(context.Context, catalogsvc.CreateProductInput) (catalogsvc.ProductDTO, error) {
	return catalogsvc.ProductDTO{}, nil
}
func (stubCatalogService) Update(context.Context, uuid.UUID, catalogsvc.UpdateProductInput) (catalogsvc.ProductDTO, error) {
	return catalogsvc.ProductDTO{}, nil
}
func (stubCatalogService) Delete(context.Context, uuid.UUID) error { return nil }

type stubCartService struct{}

func (stubCartService) Add(context.Context, string, uuid.UUID, int) (cartsvc.ItemDTO, error) {
	return cartsvc.ItemDTO{}, nil
}
func (stubCartService) UpdateQuantity(context.Context, string, uuid.UUID, int) (cartsvc.ItemDTO, bool, error) {
	return cartsvc.ItemDTO{}, false, nil
}
func (stubCartService) Remove(context.Context, string, uuid.UUID) (bool, error) { return true, nil }
func (stubCartService) Clear(context.Context, string) error                     { return nil }
func (stubCartService) List(context.Context, string) (cartsvc.CartDTO, error) {
	return cartsvc.CartDTO{Items: []cartsvc.LineDTO{}}, nil
}

type stubChatService struct{}

func (stubChatService) Ask(context.Context, string, string) (chatsvc.AskResult, error) {
	return chatsvc.AskResult{Response: "ok"}, nil
}
func (stubChatService) History(context.Context, string) ([]chatsvc.ExchangeDTO, error) {
	return nil, nil
}

type stubEstimatorService struct{}

func (stubEstimatorService) Estimate(context.Context, estimatorsvc.Input) (estimatorsvc.Result, error) {
	return estimatorsvc.Result{}, nil
}

type stubContentService struct{}

func (stubContentService) ListArticles(context.Context, bool) ([]contentsvc.ArticleSummaryDTO, error) {
	return nil, nil
}
func (stubContentService) GetArticle(context.Context, string) (contentsvc.ArticleDTO, error) {
	return contentsvc.ArticleDTO{}, nil
}
func (stubContentService) CreateArticle(context.Context, contentsvc.CreateArticleInput) (contentsvc.ArticleDTO, error) {
	return contentsvc.ArticleDTO{}, nil
}
func (stubContentService) UpdateArticle(context.Context, uuid.UUID, contentsvc.UpdateArticleInput) (contentsvc.ArticleDTO, error) {
	return contentsvc.ArticleDTO{}, nil
}
func (stubContentService) DeleteArticle(context.Context, uuid.UUID) error { return nil }
func (stubContentService) ListAdvertisements(context.Context, bool) ([]contentsvc.AdvertisementDTO, error) {
	return nil, nil
}
func (stubContentService) CreateAdvertisement(context.Context, contentsvc.CreateAdvertisementInput) (contentsvc.AdvertisementDTO, error) {
	return contentsvc.AdvertisementDTO{}, nil
}
func (stubContentService) UpdateAdvertisement(context.Context, uuid.UUID, contentsvc.UpdateAdvertisementInput) (contentsvc.AdvertisementDTO, error) {
	return contentsvc.AdvertisementDTO{}, nil
}
func (stubContentService) DeleteAdvertisement(context.Context, uuid.UUID) error { return nil }

type stubDirectoryService struct{}

func (stubDirectoryService) ListMasters(context.Context, string, bool) ([]directorysvc.MasterDTO, error) {
	return nil, nil
}
func (stubDirectoryService) CreateMaster(context.Context, directorysvc.CreateMasterInput) (directorysvc.MasterDTO, error) {
	return directorysvc.MasterDTO{}, nil
}
func (stubDirectoryService) UpdateMaster(context.Context, uuid.UUID, directorysvc.UpdateMasterInput) (directorysvc.MasterDTO, error) {
	return directorysvc.MasterDTO{}, nil
}
func (stubDirectoryService) DeleteMaster(context.Context, uuid.UUID) error { return nil }
func (stubDirectoryService) ListStoreLocations(context.Context) ([]directorysvc.StoreLocationDTO, error) {
	return nil, nil
}
func (stubDirectoryService) CreateStoreLocation(context.Context, directorysvc.CreateStoreLocationInput) (directorysvc.StoreLocationDTO, error) {
	return directorysvc.StoreLocationDTO{}, nil
}
func (stubDirectoryService) UpdateStoreLocation(context.Context, uuid.UUID, directorysvc.UpdateStoreLocationInput) (directorysvc.StoreLocationDTO, error) {
	return directorysvc.StoreLocationDTO{}, nil
}
func (stubDirectoryService) DeleteStoreLocation(context.Context, uuid.UUID) error { return nil }
func (stubDirectoryService) ListSupportBrands(context.Context) ([]directorysvc.SupportBrandDTO, error) {
	return nil, nil
}
func (stubDirectoryService) CreateSupportBrand(context.Context, directorysvc.CreateSupportBrandInput) (directorysvc.SupportBrandDTO, error) {
	return directorysvc.SupportBrandDTO{}, nil
}
func (stubDirectoryService) UpdateSupportBrand(context.Context, uuid.UUID, directorysvc.UpdateSupportBrandInput) (directorysvc.SupportBrandDTO, error) {
	return directorysvc.SupportBrandDTO{}, nil
}
func (stubDirectoryService) DeleteSupportBrand(context.Context, uuid.UUID) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			Issuer:            "securewatch-test",
			ExpirationMinutes: 60,
		},
		Session: config.SessionConfig{CookieName: "sw_session", CookieTTL: time.Hour},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	return NewRouter(
		testConfig(),
		logg,
		nil,
		nil,
		nil,
		nil,
		stubAuthService{},
		stubCatalogService{},
		stubCartService{},
		stubChatService{},
		stubEstimatorService{},
		stubContentService{},
		stubDirectoryService{},
	)
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-SecureWatch-Env"); got != "test" {
		t.Fatalf("unexpected env header: %q", got)
	}
}

func TestRouterPublicCatalog(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterCartMintsSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatal("expected minted session id header")
	}

	var cookie *http.Cookie
	for _, c := range resp.Result().Cookies() {
		if c.Name == "sw_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected HttpOnly session cookie")
	}
}

func TestRouterCartReusesSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.AddCookie(&http.Cookie{Name: "sw_session", Value: "existing-session"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Session-Id"); got != "existing-session" {
		t.Fatalf("expected session to carry over, got %q", got)
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/products/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterRegisterMountedOutsideProd(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/register", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// 404 would mean the route is missing; bad payload is expected here.
	if resp.Code == http.StatusNotFound {
		t.Fatal("register route should exist outside production")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
