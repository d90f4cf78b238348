package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	companyapp "github.com/bizdetails/backend/internal/application/company"
	"github.com/bizdetails/backend/internal/application/dashboard"
	identityapp "github.com/bizdetails/backend/internal/application/identity"
	"github.com/bizdetails/backend/internal/application/importer"
	jobapp "github.com/bizdetails/backend/internal/application/job"
	"github.com/bizdetails/backend/internal/infrastructure/auth"
	"github.com/bizdetails/backend/internal/infrastructure/cache"
	"github.com/bizdetails/backend/internal/infrastructure/config"
	"github.com/bizdetails/backend/internal/infrastructure/enrich"
	"github.com/bizdetails/backend/internal/infrastructure/logger"
	"github.com/bizdetails/backend/internal/infrastructure/persistence"
	"github.com/bizdetails/backend/internal/interfaces/http/handler"
	"github.com/bizdetails/backend/internal/interfaces/http/middleware"
	"github.com/bizdetails/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting bizdetails backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

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
	log.Info("Database connected successfully")

	// Token revocation store: Redis when reachable, in-memory otherwise
	var blacklist cache.TokenBlacklist
	redisBlacklist, err := cache.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		memBlacklist := cache.NewInMemoryTokenBlacklist()
		defer memBlacklist.Close()
		blacklist = memBlacklist
	} else {
		defer redisBlacklist.Close()
		blacklist = redisBlacklist
	}

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	jobRepo := persistence.NewGormJobRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, cfg.App.AdminEmails, log)
	companyService := companyapp.NewService(companyRepo, log)
	importService := importer.NewService(companyRepo, cfg.Import.MaxRowErrors, log)
	enrichClient := enrich.NewHTTPClient(cfg.Enrich, log)
	jobService := jobapp.NewService(jobRepo, companyRepo, userRepo, enrichClient, log)
	dashboardService := dashboard.NewService(companyRepo, jobRepo, userRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.Import.MaxFileSize))
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		AuthService: authService,
		SkipPaths: []string{
			"/healthz",
			"/api/process",
			"/api/auth/signup",
			"/api/auth/signin",
			"/api/auth/refresh",
		},
		Logger: log,
	}))

	healthHandler := handler.NewHealthHandler(db)
	healthHandler.RegisterRootRoutes(engine)

	r := router.NewRouter(engine)
	r.Register(healthHandler).
		Register(handler.NewAuthHandler(authService, log)).
		Register(handler.NewCompanyHandler(companyService, log)).
		Register(handler.NewJobHandler(jobService, log)).
		Register(handler.NewDashboardHandler(dashboardService, log))
	r.UseAdminGuards(middleware.AdminOnly())
	r.RegisterAdmin(handler.NewImportHandler(importService, userRepo, log))
	r.Setup()

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
