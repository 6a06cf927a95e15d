// Package router wires the HTTP routes and middleware stack.
package router

import (
	"context"

	identityapp "github.com/souqbun/backend/internal/application/identity"
	"github.com/souqbun/backend/internal/infrastructure/auth"
	"github.com/souqbun/backend/internal/infrastructure/config"
	"github.com/souqbun/backend/internal/infrastructure/logger"
	"github.com/souqbun/backend/internal/interfaces/http/handler"
	"github.com/souqbun/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Address  *handler.AddressHandler
	Order    *handler.OrderHandler
	Supplier *handler.SupplierHandler
	Admin    *handler.AdminHandler
}

// Setup builds the Gin engine with the full middleware stack and route
// table. The supplier back-office group is gated on both the supplier
// role and an approved profile, so demoted or rejected accounts lose
// access even with a valid token.
func Setup(
	cfg *config.Config,
	log *zap.Logger,
	jwtService *auth.JWTService,
	supplierService *identityapp.SupplierService,
	registry *prometheus.Registry,
	h Handlers,
) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if registry != nil {
		metrics := middleware.NewHTTPMetrics(registry)
		engine.Use(metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", h.Health.Health)

	api := engine.Group("/api")

	// Public routes
	authGroup := api.Group("/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		// Tighter limit on credential endpoints to slow brute forcing
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGroup.Use(middleware.RateLimit(authLimiter))
	}
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	api.GET("/categories", h.Category.List)
	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.Get)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware(jwtService, log))

	authed.GET("/auth/me", h.Auth.Me)

	authed.GET("/addresses", h.Address.List)
	authed.POST("/addresses", h.Address.Create)
	authed.PUT("/addresses/:id", h.Address.Update)
	authed.DELETE("/addresses/:id", h.Address.Delete)
	authed.PUT("/addresses/:id/default", h.Address.SetDefault)

	authed.POST("/orders", h.Order.Checkout)
	authed.GET("/orders", h.Order.ListMine)
	authed.GET("/orders/:id", h.Order.Get)

	// Any authenticated account may apply and watch its application
	authed.POST("/supplier/apply", h.Supplier.Apply)
	authed.GET("/supplier/profile", h.Supplier.Profile)

	// Supplier back-office
	supplier := authed.Group("/supplier")
	supplier.Use(middleware.RequireRole("SUPPLIER"))
	supplier.Use(middleware.RequireApprovedSupplier(func(ctx context.Context, userID uuid.UUID) error {
		_, err := supplierService.ApprovedProfile(ctx, userID)
		return err
	}))

	supplier.GET("/products", h.Product.ListMine)
	supplier.POST("/products", h.Product.Create)
	supplier.PUT("/products/:id", h.Product.Update)
	supplier.DELETE("/products/:id", h.Product.Delete)
	supplier.POST("/products/:id/images/upload-url", h.Product.GenerateUploadURL)
	supplier.POST("/products/:id/images", h.Product.AttachImage)

	supplier.GET("/orders", h.Order.ListSupplierItems)
	supplier.PUT("/orders/items/:id/status", h.Order.UpdateItemStatus)

	supplier.GET("/dashboard", h.Supplier.Dashboard)
	supplier.GET("/finances", h.Supplier.Finances)

	// Admin console
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole("ADMIN"))

	admin.POST("/categories", h.Category.Create)
	admin.GET("/suppliers", h.Admin.ListSuppliers)
	admin.PUT("/suppliers/:id/approve", h.Admin.ApproveSupplier)
	admin.PUT("/suppliers/:id/reject", h.Admin.RejectSupplier)
	admin.GET("/orders", h.Order.ListAll)
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/finances", h.Admin.Finances)

	return engine
}
