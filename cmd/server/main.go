package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/souqbun/backend/internal/application/catalog"
	identityapp "github.com/souqbun/backend/internal/application/identity"
	orderapp "github.com/souqbun/backend/internal/application/order"
	reportapp "github.com/souqbun/backend/internal/application/report"
	"github.com/souqbun/backend/internal/infrastructure/auth"
	"github.com/souqbun/backend/internal/infrastructure/cache"
	"github.com/souqbun/backend/internal/infrastructure/config"
	"github.com/souqbun/backend/internal/infrastructure/logger"
	"github.com/souqbun/backend/internal/infrastructure/persistence"
	"github.com/souqbun/backend/internal/infrastructure/storage"
	"github.com/souqbun/backend/internal/interfaces/http/handler"
	"github.com/souqbun/backend/internal/interfaces/http/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting marketplace backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis-backed product cache, optional
	var productCache catalogapp.ReadCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		productCache = cache.NewJSONCache(redisClient, "product", cfg.Redis.CacheTTL)
		log.Info("Redis cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Object storage for product images; the stub keeps the image flow
	// testable without a bucket
	var objectStorage catalogapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage disabled, using stub URLs")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormSupplierProfileRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TokenExpiration, cfg.JWT.Issuer)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	supplierService := identityapp.NewSupplierService(profileRepo, userRepo, log)
	addressService := identityapp.NewAddressService(addressRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, productCache, cfg.Marketplace.DefaultPageSize, log)
	imageService := catalogapp.NewImageService(productRepo, objectStorage, cfg.Storage.PresignExpiration, log)
	checkoutService := orderapp.NewCheckoutService(orderRepo, productRepo, addressRepo, cfg.Marketplace.PlatformFeeRate, log)
	orderService := orderapp.NewOrderService(orderRepo, log)
	reportService := reportapp.NewReportService(reportRepo)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(db, version),
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService, imageService),
		Address:  handler.NewAddressHandler(addressService),
		Order:    handler.NewOrderHandler(checkoutService, orderService),
		Supplier: handler.NewSupplierHandler(supplierService, reportService),
		Admin:    handler.NewAdminHandler(supplierService, reportService),
	}

	engine := router.Setup(cfg, log, jwtService, supplierService, registry, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
