package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mercatto/catalog-api/internal/api/handler"
	"github.com/mercatto/catalog-api/internal/api/middleware"
	"github.com/mercatto/catalog-api/internal/api/session"
	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
	"github.com/mercatto/catalog-api/internal/core/service"
	gormdb "github.com/mercatto/catalog-api/internal/infrastructure/db/gorm"
	redisdb "github.com/mercatto/catalog-api/internal/infrastructure/db/redis"
)

// Options carries everything the router needs to assemble the service graph.
type Options struct {
	DB            *gorm.DB
	Redis         *redis.Client // nil disables the login throttle
	Audit         ports.AuditRecorder
	JWTSecret     string
	SessionSecret string
	TokenTTL      time.Duration
	Production    bool
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger, opts.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(session.Middleware(opts.SessionSecret))

	// --- Dependencies ---
	userRepo := gormdb.NewUserRepository(opts.DB)
	categoryRepo := gormdb.NewCategoryRepository(opts.DB)
	productRepo := gormdb.NewProductRepository(opts.DB)

	var limiter ports.LoginLimiter
	if opts.Redis != nil {
		limiter = redisdb.NewLoginLimiter(opts.Redis)
	}

	tokenService := service.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, limiter, opts.Audit, opts.Logger)
	auditRepo := gormdb.NewAuditRepository(opts.DB)
	userService := service.NewUserService(userRepo, opts.Audit, auditRepo, opts.Logger)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, opts.Audit, opts.Logger)
	productService := service.NewProductService(productRepo, categoryRepo, opts.Audit, opts.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)

	bearer := middleware.Auth(tokenService, userRepo, opts.Logger)
	remember := middleware.RememberAuth(tokenService, userRepo, opts.Logger)
	admin := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// --- User routes ---
	// The remember cookie is a silent convenience login for browsers; the
	// bearer gate stays mandatory for API clients, so cookie-only requests
	// go through handlers that check the principal themselves.
	users := e.Group("/api/usuarios", bearer)
	users.GET("/perfil", userHandler.Profile)
	users.PUT("/perfil", userHandler.UpdateProfile)
	users.PUT("/alterar-senha", userHandler.ChangePassword)
	users.GET("", userHandler.List, admin)
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/atividades", userHandler.Activity, admin)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, admin)

	// --- Catalog routes: public reads, admin-gated mutations ---
	categories := e.Group("/api/categorias")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.GET("/:id/produtos", categoryHandler.Products)
	categories.POST("", categoryHandler.Create, bearer, admin)
	categories.PUT("/:id", categoryHandler.Update, bearer, admin)
	categories.DELETE("/:id", categoryHandler.Delete, bearer, admin)

	products := e.Group("/api/produtos")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, bearer, admin)
	products.PUT("/:id", productHandler.Update, bearer, admin)
	products.DELETE("/:id", productHandler.Delete, bearer, admin)

	// --- Browser entry points (cookie auto-login, handler-side checks) ---
	web := e.Group("", remember)
	web.GET("/perfil", userHandler.Profile)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.DB, opts.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
