package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rei-naissance/Huggle-Bundler/app/echo-server/router"
	"github.com/rei-naissance/Huggle-Bundler/business/bundles"
	"github.com/rei-naissance/Huggle-Bundler/business/recommender"
	"github.com/rei-naissance/Huggle-Bundler/internal/middleware"
	psqlRepo "github.com/rei-naissance/Huggle-Bundler/internal/repository/postgres"
	redisRepo "github.com/rei-naissance/Huggle-Bundler/internal/repository/redis"
	"github.com/rei-naissance/Huggle-Bundler/internal/repository/textgen"
	"github.com/rei-naissance/Huggle-Bundler/internal/rest"
	"github.com/rei-naissance/Huggle-Bundler/pkg/config"
	"github.com/rei-naissance/Huggle-Bundler/pkg/database"
	redisdb "github.com/rei-naissance/Huggle-Bundler/pkg/database/redis"
	"github.com/rei-naissance/Huggle-Bundler/pkg/logger"
	"github.com/rei-naissance/Huggle-Bundler/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Huggle Bundler", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init text generation client; empty credentials mean enrichment is
	// disabled and every candidate keeps its templated copy.
	textGenRepo := textgen.NewTextGenRepository(textgen.TextGenConfig{
		Provider:         cfg.AI.Provider,
		GroqAPIKey:       cfg.AI.GroqAPIKey,
		GroqModel:        cfg.AI.GroqModel,
		OpenRouterAPIKey: cfg.AI.OpenRouterAPIKey,
		OpenRouterModel:  cfg.AI.OpenRouterModel,
		Timeout:          time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	})

	// Init repo
	storeRepo := psqlRepo.NewStoreRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	bundleRepo := psqlRepo.NewBundleRepository(db)

	// Optional recommendation cache
	var recoCache recommender.CandidateCache
	if cfg.Redis.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisdb.CloseRedisClient(redisClient)

		recoCache = redisRepo.NewRecommendationCache(redisClient, time.Duration(cfg.Bundler.CacheTTLSeconds)*time.Second)
		logger.Info("Recommendation cache enabled")
	}

	// Init service
	recommenderService := recommender.NewRecommenderService(
		storeRepo,
		productRepo,
		textGenRepo,
		recoCache,
		recommender.Pricing{SizeDiscounts: cfg.Bundler.SizeDiscounts},
	)
	bundlesService := bundles.NewBundlesService(bundleRepo, storeRepo, recommenderService)

	// Init handler
	recoHandler := rest.NewRecommendationHandler(recommenderService)
	bundleHandler := rest.NewBundleHandler(bundlesService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupBundleRoutes(api, bundleHandler, recoHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
