package main

import (
	"context"
	"time"

	"catalog-service/internal/catalog"
	"catalog-service/internal/handler"
	"catalog-service/internal/loader"
	mid "catalog-service/internal/middleware"
	"catalog-service/internal/store"
	"catalog-service/pkg/config"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if present; environments without one rely on real
	// environment variables.
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalog-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// The store is owned here and injected into the handlers; there is no
	// process-wide singleton.
	st := store.New(store.Options{
		PageSize: appConfig.Catalog.PageSize,
		DefaultCategory: catalog.Category{
			ID:   appConfig.Catalog.DefaultCategoryID,
			Name: appConfig.Catalog.DefaultCategoryName,
			Slug: catalog.Slugify(appConfig.Catalog.DefaultCategoryName),
		},
		DefaultCommentAuthor: appConfig.Catalog.DefaultCommentAuthor,
	})

	loadCatalog(st, appConfig, log)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(mid.RateLimitMiddleware(appConfig.RateLimit.RequestsPerSecond, appConfig.RateLimit.Burst))

	products := handler.NewProductHandler(st)
	comments := handler.NewCommentHandler(st)
	categories := handler.NewCategoryHandler(st)
	health := handler.NewHealthHandler(st)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", health.Health)

	// Product API routes
	productAPI := e.Group("/api/products")
	productAPI.GET("", products.ListProducts)
	productAPI.POST("", products.CreateProduct)
	productAPI.POST("/page/next", products.NextPage)
	productAPI.POST("/page/prev", products.PrevPage)
	productAPI.GET("/:id", products.GetProduct)
	productAPI.DELETE("/:id", products.DeleteProduct)
	productAPI.POST("/:id/restore", products.RestoreProduct)
	productAPI.POST("/:id/comments", comments.AddComment)
	productAPI.PUT("/:id/comments/:commentId", comments.UpdateComment)
	productAPI.DELETE("/:id/comments/:commentId", comments.DeleteComment)

	// Derived views
	e.GET("/api/categories", categories.ListCategories)
	e.GET("/api/stats", categories.GetStats)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// loadCatalog fetches and ingests the product feed. Every failure path
// degrades to an empty, fully initialized catalog; nothing here is fatal.
func loadCatalog(st *store.Store, appConfig *config.Config, log *zap.Logger) {
	defer prometheus.TrackFeedLoad()(time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Catalog.FetchTimeout)
	defer cancel()

	fetcher := loader.New(appConfig.Catalog.FetchTimeout)
	raw, fetchErr := fetcher.Fetch(ctx, appConfig.Catalog.SourceURL)
	if fetchErr != nil {
		prometheus.FeedLoadFailures.Inc()
		log.Warn("Failed to fetch product feed, starting with an empty catalog",
			zap.String("source", appConfig.Catalog.SourceURL),
			zap.Error(fetchErr))
	}

	count, parseErr := st.Load(raw)
	if parseErr != nil && fetchErr == nil {
		prometheus.FeedLoadFailures.Inc()
		log.Warn("Product feed could not be parsed, starting with an empty catalog",
			zap.String("source", appConfig.Catalog.SourceURL),
			zap.Error(parseErr))
	}

	prometheus.FeedProductsCounter.Add(float64(count))
	prometheus.UpdateCatalogSize(st.Counts())
	log.Info("Catalog loaded",
		zap.Int("products", count),
		zap.String("source", appConfig.Catalog.SourceURL))
}
