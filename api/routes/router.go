package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/securewatch/backend/api/controllers"
	"github.com/securewatch/backend/api/middleware"
	authsvc "github.com/securewatch/backend/internal/auth"
	cartsvc "github.com/securewatch/backend/internal/cart"
	catalogsvc "github.com/securewatch/backend/internal/catalog"
	chatsvc "github.com/securewatch/backend/internal/chat"
	contentsvc "github.com/securewatch/backend/internal/content"
	directorysvc "github.com/securewatch/backend/internal/directory"
	estimatorsvc "github.com/securewatch/backend/internal/estimator"
	pkgauth "github.com/securewatch/backend/pkg/auth"
	"github.com/securewatch/backend/pkg/auth/session"
	"github.com/securewatch/backend/pkg/config"
	"github.com/securewatch/backend/pkg/logger"
	"github.com/securewatch/backend/pkg/metrics"
	"github.com/securewatch/backend/pkg/redis"
)

// NewRouter wires the public storefront, session-scoped, and admin surfaces.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	catalogService catalogsvc.Service,
	cartService cartsvc.Service,
	chatService chatsvc.Service,
	estimatorService estimatorsvc.Service,
	contentService contentsvc.Service,
	directoryService directorysvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogList(catalogService, logg))
			r.Get("/products/{productId}", controllers.CatalogGet(catalogService, logg))
			r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
			r.Get("/brands", controllers.CatalogBrands(catalogService, logg))
		})

		r.Get("/advertisements", controllers.AdvertisementsList(contentService, logg))
		r.Get("/articles", controllers.ArticlesList(contentService, logg))
		r.Get("/articles/{slug}", controllers.ArticleGet(contentService, logg))
		r.Get("/masters", controllers.MastersList(directoryService, logg))
		r.Get("/stores", controllers.StoresList(directoryService, logg))
		r.Get("/support-brands", controllers.SupportBrandsList(directoryService, logg))

		// Everything below rides the anonymous browser session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.BrowserSession(cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Post("/", controllers.CartAdd(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Patch("/{itemId}", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/{itemId}", controllers.CartRemoveItem(cartService, logg))
			})

			r.Route("/chat", func(r chi.Router) {
				r.With(middleware.SessionRateLimit("chat", cfg.ChatRateLimit, redisClient, logg)).
					Post("/", controllers.ChatAsk(chatService, httpMetrics, logg))
				r.Get("/history", controllers.ChatHistory(chatService, logg))
			})

			r.With(middleware.SessionRateLimit("calculator", cfg.ChatRateLimit, redisClient, logg)).
				Post("/calculator", controllers.CalculatorEstimate(estimatorService, logg))
		})
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		if !cfg.App.IsProd() {
			r.Post("/register", controllers.AuthRegister(authService, logg))
		}
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(authService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole(pkgauth.RoleAdmin, logg))

		r.Post("/auth/logout", controllers.AuthLogout(authService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(catalogService, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(catalogService, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(catalogService, logg))
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", controllers.AdminArticlesList(contentService, logg))
			r.Post("/", controllers.AdminArticleCreate(contentService, logg))
			r.Patch("/{articleId}", controllers.AdminArticleUpdate(contentService, logg))
			r.Delete("/{articleId}", controllers.AdminArticleDelete(contentService, logg))
		})

		r.Route("/advertisements", func(r chi.Router) {
			r.Get("/", controllers.AdminAdvertisementsList(contentService, logg))
			r.Post("/", controllers.AdminAdvertisementCreate(contentService, logg))
			r.Patch("/{advertisementId}", controllers.AdminAdvertisementUpdate(contentService, logg))
			r.Delete("/{advertisementId}", controllers.AdminAdvertisementDelete(contentService, logg))
		})

		r.Route("/masters", func(r chi.Router) {
			r.Get("/", controllers.AdminMastersList(directoryService, logg))
			r.Post("/", controllers.AdminMasterCreate(directoryService, logg))
			r.Patch("/{masterId}", controllers.AdminMasterUpdate(directoryService, logg))
			r.Delete("/{masterId}", controllers.AdminMasterDelete(directoryService, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Post("/", controllers.AdminStoreCreate(directoryService, logg))
			r.Patch("/{storeId}", controllers.AdminStoreUpdate(directoryService, logg))
			r.Delete("/{storeId}", controllers.AdminStoreDelete(directoryService, logg))
		})

		r.Route("/support-brands", func(r chi.Router) {
			r.Post("/", controllers.AdminSupportBrandCreate(directoryService, logg))
			r.Patch("/{brandId}", controllers.AdminSupportBrandUpdate(directoryService, logg))
			r.Delete("/{brandId}", controllers.AdminSupportBrandDelete(directoryService, logg))
		})
	})

	return r
}
