package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cvboost/scoring-system/docs"
	"github.com/cvboost/scoring-system/internal/api/handler"
	"github.com/cvboost/scoring-system/internal/api/middleware"
	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/scoring"
	"github.com/cvboost/scoring-system/internal/core/service"
	"github.com/cvboost/scoring-system/internal/infrastructure/config"
	mongodb "github.com/cvboost/scoring-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cvboost/scoring-system/internal/infrastructure/db/redis"
	"github.com/cvboost/scoring-system/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the billing dispatcher, which the caller must Start.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("scoring"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	analysisRepo := mongodb.NewAnalysisRepository(db)
	billingEventRepo := mongodb.NewBillingEventRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	analysisService := service.NewAnalysisService(analysisRepo, userRepo, scoring.DefaultConfig(), log)
	accountService := service.NewAccountService(userRepo, log)
	billingService := service.NewBillingService(userRepo, billingEventRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.Billing.Workers, billingService, log)

	authHandler := handler.NewAuthHandler(authService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	accountHandler := handler.NewAccountHandler(accountService)
	billingHandler := handler.NewBillingHandler(dispatcher, cfg.Billing.WebhookSecret, log)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/analyses/resume", analysisHandler.ScanResume)
	v1.POST("/analyses/profile", analysisHandler.ScanProfile)
	v1.GET("/analyses", analysisHandler.List)
	v1.GET("/analyses/:id", analysisHandler.Get)
	v1.POST("/analyses/:id/optimize", analysisHandler.Optimize)
	v1.GET("/analyses/:id/compare", analysisHandler.Compare)
	v1.GET("/account", accountHandler.Get)

	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/users/:id/plan", accountHandler.OverridePlan)

	// --- Billing webhooks (signature-verified, no JWT) ---
	e.POST("/webhooks/billing", billingHandler.Receive)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
