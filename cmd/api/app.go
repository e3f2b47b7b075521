package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"sunfutures/internal/cache"
	"sunfutures/internal/config"
	"sunfutures/internal/equipment"
	"sunfutures/internal/forecast"
	"sunfutures/internal/location"
	"sunfutures/internal/storage"
	"sunfutures/internal/weather"
)

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	cfg             *config.Config
	forecastService forecast.Service
	storageService  storage.Service
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	resolver, err := location.NewResolverService(cfg.Weather.Contact)
	if err != nil {
		return nil, err
	}

	storageSvc, err := storage.NewStorageService(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	var store cache.Store
	if cfg.Cache.RedisAddr != "" {
		store = cache.NewRedisStore(cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
	} else {
		store = cache.NewMemoryStore()
	}

	forecastSvc := forecast.NewForecastService(
		cfg,
		resolver,
		weather.NewWeatherService(cfg, logger),
		equipment.NewExtractorService(storageSvc, logger),
		cache.New(store, cfg.CacheTTL(), logger),
		logger,
	)

	app := &App{
		router:          router,
		logger:          logger,
		cfg:             cfg,
		forecastService: forecastSvc,
		storageService:  storageSvc,
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
