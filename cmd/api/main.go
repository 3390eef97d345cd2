package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/securewatch/backend/api/routes"
	authsvc "github.com/securewatch/backend/internal/auth"
	cartsvc "github.com/securewatch/backend/internal/cart"
	catalogsvc "github.com/securewatch/backend/internal/catalog"
	chatsvc "github.com/securewatch/backend/internal/chat"
	contentsvc "github.com/securewatch/backend/internal/content"
	directorysvc "github.com/securewatch/backend/internal/directory"
	estimatorsvc "github.com/securewatch/backend/internal/estimator"
	"github.com/securewatch/backend/pkg/auth/session"
	"github.com/securewatch/backend/pkg/config"
	"github.com/securewatch/backend/pkg/db"
	"github.com/securewatch/backend/pkg/logger"
	"github.com/securewatch/backend/pkg/metrics"
	"github.com/securewatch/backend/pkg/migrate"
	"github.com/securewatch/backend/pkg/openai"
	"github.com/securewatch/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var aiClient *openai.Client
	if cfg.OpenAI.Enabled() {
		aiClient, err = openai.NewClient(cfg.OpenAI.APIKey,
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithHTTPClient(&http.Client{Timeout: cfg.OpenAI.Timeout}),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to create openai client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "openai disabled, assistant endpoints answer with fallbacks")
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Repo:     authsvc.NewRepository(dbClient.DB()),
		Sessions: sessionManager,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalogsvc.NewService(catalogsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	chatParams := chatsvc.ServiceParams{
		Repo:   chatsvc.NewRepository(dbClient.DB()),
		Logger: logg,
	}
	if aiClient != nil {
		chatParams.Completer = aiClient
	}
	chatService, err := chatsvc.NewService(chatParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	estimatorParams := estimatorsvc.ServiceParams{
		Metrics: httpMetrics,
		Logger:  logg,
	}
	if aiClient != nil {
		estimatorParams.Completer = aiClient
	}
	estimatorService, err := estimatorsvc.NewService(estimatorParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create estimator service", err)
		os.Exit(1)
	}

	contentService, err := contentsvc.NewService(contentsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	directoryService, err := directorysvc.NewService(directorysvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create directory service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	instance := os.Getenv("DYNO")
	if instance == "" {
		instance = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			authService,
			catalogService,
			cartService,
			chatService,
			estimatorService,
			contentService,
			directoryService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
