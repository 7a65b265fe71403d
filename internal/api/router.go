package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/marketloop/storefront-api/docs"
	"github.com/marketloop/storefront-api/internal/api/handler"
	"github.com/marketloop/storefront-api/internal/api/middleware"
	"github.com/marketloop/storefront-api/internal/core/domain"
	"github.com/marketloop/storefront-api/internal/core/service"
	"github.com/marketloop/storefront-api/internal/infrastructure/config"
	mongostore "github.com/marketloop/storefront-api/internal/infrastructure/db/mongo"
	redisstore "github.com/marketloop/storefront-api/internal/infrastructure/db/redis"
	"github.com/marketloop/storefront-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	orderRepo := mongostore.NewOrderRepository(db)
	issuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, issuer, log)
	orderService := service.NewOrderService(orderRepo, log)
	authHandler := handler.NewAuthHandler(authService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)
	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	loginThrottle := middleware.LoginThrottle(redisstore.NewLoginThrottle(rdb), log)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login, loginThrottle)
	e.POST("/api/auth/forgot-password", authHandler.ForgotPassword)
	e.PUT("/api/auth/profile", authHandler.UpdateProfile, authMiddleware)

	// --- Order routes (admin) ---
	e.GET("/api/orders", orderHandler.ListAll, authMiddleware, adminOnly)
	e.PUT("/api/orders/:order_id/status", orderHandler.SetStatus, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
