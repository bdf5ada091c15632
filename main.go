package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Phirakan/go-storefront/catalog"
	"github.com/Phirakan/go-storefront/config"
	"github.com/Phirakan/go-storefront/handlers"
	"github.com/Phirakan/go-storefront/initializers"
	"github.com/Phirakan/go-storefront/middleware"
	"github.com/Phirakan/go-storefront/storage"
	"github.com/Phirakan/go-storefront/store"
	"github.com/Phirakan/go-storefront/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	router, err := setup(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialise storefront", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.Checkout.Delay,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	logger.Info("Server started",
		zap.String("address", srv.Addr),
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage.Driver),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// setup wires the catalog, the shopper stores and the HTTP routes
func setup(cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Info("Catalog loaded", zap.Int("products", cat.Len()))

	backend, err := openStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	signer, err := utils.NewSessionSigner(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	sessions := store.NewRegistry(backend, cfg.Storage.Key, cfg.Session.IdleTTL, logger)
	h := handlers.New(cat, sessions, logger, handlers.Options{
		Pricing: store.Pricing{
			ShippingFee:           cfg.Pricing.ShippingFee,
			FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
			TaxRate:               cfg.Pricing.TaxRate,
		},
		PageSize:      cfg.Catalog.PageSize,
		RelatedLimit:  cfg.Catalog.RelatedLimit,
		CheckoutDelay: cfg.Checkout.Delay,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a new Gin router
	r := gin.New()
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.SessionMiddleware(signer, cfg.Session.TTL, cfg.IsProduction(), logger))

	h.Routes(r)
	return r, nil
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.File == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(cfg.File)
}

func openStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return storage.NewMemory(), nil
	case config.StoragePostgres:
		// Initialize database
		db, err := initializers.ConnectToDB(cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return storage.NewGorm(db)
	default:
		return storage.NewFile(cfg.Storage.Dir)
	}
}
