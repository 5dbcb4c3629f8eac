package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/telegram-clone/admin-api/internal/api/handler"
	"github.com/telegram-clone/admin-api/internal/api/middleware"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/service"
	"github.com/telegram-clone/admin-api/internal/infrastructure/config"
	mongodb "github.com/telegram-clone/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/telegram-clone/admin-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("admin_api"))

	// --- Repositories ---
	adminRepo := mongodb.NewAdminRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	roomRepo := mongodb.NewRoomRepository(db)
	mediaRepo := mongodb.NewMediaRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)
	statsRepo := mongodb.NewStatsRepository(db)

	// --- Services ---
	audit := service.NewAuditLogger(auditRepo, log)
	authService := service.NewAuthService(adminRepo, audit, service.AuthConfig{
		JWTSecret:        cfg.JWTSecret,
		SessionTTL:       cfg.Auth.SessionTTL,
		RememberMeTTL:    cfg.Auth.RememberMeTTL,
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockoutDuration:  cfg.Auth.LockoutDuration,
	}, log)
	userService := service.NewUserService(userRepo, messageRepo, roomRepo, mediaRepo, reportRepo, audit, log)
	dashboardService := service.NewDashboardService(statsRepo, audit)
	reportService := service.NewReportService(reportRepo, audit)
	messageService := service.NewMessageService(messageRepo, audit)
	roomService := service.NewRoomService(roomRepo, audit)
	mediaService := service.NewMediaService(mediaRepo, audit)
	settingsService := service.NewSettingsService(settingsRepo, audit)
	adminService := service.NewAdminService(adminRepo, audit, cfg.Auth.BcryptCost)
	auditService := service.NewAuditService(auditRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService)
	messageHandler := handler.NewMessageHandler(messageService)
	roomHandler := handler.NewRoomHandler(roomService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	adminHandler := handler.NewAdminHandler(adminService)
	setupHandler := handler.NewSetupHandler(adminService)
	auditHandler := handler.NewAuditHandler(auditService)

	// --- Middleware ---
	auth := middleware.Auth(cfg.JWTSecret, adminRepo)
	authOptional := middleware.AuthOptional(cfg.JWTSecret, adminRepo)
	limiter := redisdb.NewRateLimiter(rdb, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)
	loginLimit := middleware.RateLimit(limiter, "login", log)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, loginLimit)
	// Logout must clear the cookie even when the session is gone or invalid.
	e.POST("/auth/logout", authHandler.Logout, authOptional)
	e.GET("/auth/profile", authHandler.Profile, auth)
	e.POST("/auth/setup-2fa", authHandler.TwoFactor, auth)

	// --- First-run setup (unauthenticated by design, rate limited) ---
	e.GET("/setup", setupHandler.Status)
	e.POST("/setup", setupHandler.Init, loginLimit)
	e.POST("/setup/fix-permissions", setupHandler.FixPermissions, loginLimit)

	// --- Moderation and dashboard routes ---
	e.GET("/dashboard/stats", dashboardHandler.Stats, auth,
		middleware.Authorize(domain.ResourceSystem, domain.ActionView))

	e.GET("/users", userHandler.List, auth,
		middleware.Authorize(domain.ResourceUsers, domain.ActionView))
	e.GET("/users/:id", userHandler.Get, auth,
		middleware.Authorize(domain.ResourceUsers, domain.ActionView))
	e.PATCH("/users", userHandler.Moderate, auth,
		middleware.Authorize(domain.ResourceUsers, domain.ActionEdit))
	e.PATCH("/users/:id", userHandler.Moderate, auth,
		middleware.Authorize(domain.ResourceUsers, domain.ActionEdit))
	e.DELETE("/users/:id", userHandler.Delete, auth,
		middleware.Authorize(domain.ResourceUsers, domain.ActionDelete))

	e.GET("/messages", messageHandler.List, auth,
		middleware.Authorize(domain.ResourceMessages, domain.ActionView))
	e.DELETE("/messages/:id", messageHandler.Delete, auth,
		middleware.Authorize(domain.ResourceMessages, domain.ActionDelete))

	e.GET("/rooms", roomHandler.List, auth,
		middleware.Authorize(domain.ResourceRooms, domain.ActionView))
	e.PATCH("/rooms/:id", roomHandler.SetBlocked, auth,
		middleware.Authorize(domain.ResourceRooms, domain.ActionEdit))

	e.GET("/media", mediaHandler.List, auth,
		middleware.Authorize(domain.ResourceMessages, domain.ActionView))
	e.DELETE("/media/:id", mediaHandler.Delete, auth,
		middleware.Authorize(domain.ResourceMessages, domain.ActionDelete))

	e.GET("/reports", reportHandler.List, auth,
		middleware.Authorize(domain.ResourceReports, domain.ActionView))
	e.PATCH("/reports/:id", reportHandler.Resolve, auth,
		middleware.Authorize(domain.ResourceReports, domain.ActionManage))

	e.GET("/system/settings", settingsHandler.List, auth,
		middleware.Authorize(domain.ResourceSystem, domain.ActionView))
	e.PUT("/system/settings/:key", settingsHandler.Update, auth,
		middleware.Authorize(domain.ResourceSystem, domain.ActionEdit))

	e.GET("/admins", adminHandler.List, auth,
		middleware.Authorize(domain.ResourceAdmins, domain.ActionView))
	e.POST("/admins", adminHandler.Create, auth,
		middleware.Authorize(domain.ResourceAdmins, domain.ActionManage))
	e.PATCH("/admins/:id", adminHandler.Update, auth,
		middleware.Authorize(domain.ResourceAdmins, domain.ActionManage))

	e.GET("/audit-logs", auditHandler.List, auth,
		middleware.Authorize(domain.ResourceAdmins, domain.ActionView))

	// --- Operational surfaces ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
