package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/config"
	"github.com/academy-labs/academy-api/internal/cache"
	"github.com/academy-labs/academy-api/internal/database/postgres"
	"github.com/academy-labs/academy-api/internal/handlers"
	"github.com/academy-labs/academy-api/internal/middleware"
	"github.com/academy-labs/academy-api/internal/notify"
	"github.com/academy-labs/academy-api/internal/repository"
	"github.com/academy-labs/academy-api/internal/services"
	"github.com/academy-labs/academy-api/internal/session"
	"github.com/academy-labs/academy-api/pkg/db"
	"github.com/academy-labs/academy-api/pkg/httpclient"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
	"github.com/academy-labs/academy-api/pkg/profiling"
	"github.com/academy-labs/academy-api/pkg/storage"
	"github.com/academy-labs/academy-api/pkg/tracing"
)

// registerAPIRoutes wires the public and admin API surface.
func registerAPIRoutes(
	router *gin.Engine,
	cfg *config.Config,
	generalRateLimiter, submitRateLimiter, authRateLimiter *middleware.RateLimiter,
	healthHandler *handlers.HealthHandler,
	submissionHandler *handlers.SubmissionHandler,
	sectionHandler *handlers.SectionHandler,
	authHandler *handlers.AuthHandler,
) {
	// Liveness probe stays outside /api: no session, no rate limit.
	router.GET("/health", healthHandler.Healthcheck)

	adminGuard := middleware.AdminAuthMiddleware(&cfg.Admin)

	api := router.Group("/api")
	api.Use(middleware.SessionMiddleware(
		session.NewMemoryStore(time.Duration(cfg.Session.TTLHours)*time.Hour),
		cfg.Session.CookieSecure,
	))

	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	enrollment := api.Group("/enrollment")
	enrollment.POST("/submit", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), submissionHandler.Submit)
	enrollment.GET("/all", generalRateLimiter.Middleware(), adminGuard, submissionHandler.GetAll)

	auth := api.Group("/auth")
	auth.POST("/login", authRateLimiter.Middleware(), authHandler.Login)
	auth.GET("/check", generalRateLimiter.Middleware(), authHandler.Check)
	auth.POST("/logout", generalRateLimiter.Middleware(), authHandler.Logout)

	section := api.Group("/our-section")
	section.GET("/all", generalRateLimiter.Middleware(), sectionHandler.GetAll)

	sectionAdmin := section.Group("/admin")
	sectionAdmin.Use(adminGuard)
	sectionAdmin.GET("/all", sectionHandler.GetAllAdmin)
	sectionAdmin.GET("/:id", sectionHandler.GetByID)
	sectionAdmin.POST("/create", middleware.BodySizeLimitMiddleware(100*1024), sectionHandler.Create)
	sectionAdmin.PUT("/:id", middleware.BodySizeLimitMiddleware(100*1024), sectionHandler.Update)
	sectionAdmin.DELETE("/:id", sectionHandler.Delete)
	// Base64 payloads inflate roughly 4/3, so the cap leaves headroom over
	// the 10 MB decoded image limit.
	sectionAdmin.POST("/:id/image", middleware.BodySizeLimitMiddleware(15*1024*1024), sectionHandler.UploadImage)

	// Unknown API routes get the uniform envelope instead of gin's plain 404.
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "API endpoint not found",
				"path":    c.Request.URL.Path,
			})
			return
		}
		c.Status(http.StatusNotFound)
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Academy API",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Distributed tracing (no-op when no exporter endpoint is configured)
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (disabled unless configured)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Error("Failed to initialize profiler", zap.Error(err))
	} else {
		defer profilerStop()
	}

	metrics.RecordInfrastructureMetrics()

	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: migrations run separately via the migrate command

	dbClient := postgres.NewClient(pool)

	// Object storage for section images; optional, image upload reports an
	// error when absent but the rest of the API works.
	var storageClient *storage.Client
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		storageClient, err = storage.NewClient(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize storage client", zap.Error(err))
		}
	}

	httpClient := httpclient.NewStandardClient()

	// Notification channels: email (SendGrid or SMTP by config precedence)
	// plus the optional WhatsApp chat channel.
	dispatcher := notify.NewDispatcher(
		notify.NewEmailChannel(&cfg.Notify, httpClient),
		notify.NewWhatsAppChannel(&cfg.Notify, httpClient),
	)

	submissionRepo := repository.NewSubmissionRepository(dbClient)
	sectionRepo := repository.NewSectionItemRepository(dbClient)
	sectionCache := cache.NewSectionCache(dbClient, cfg.Cache.SectionTTLSeconds)

	submissionService := services.NewSubmissionService(submissionRepo, dispatcher)
	sectionService := services.NewSectionService(sectionRepo, sectionCache, storageClient)
	authService := services.NewAuthService(&cfg.Admin)

	healthHandler := handlers.NewHealthHandler(dbClient)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	sectionHandler := handlers.NewSectionHandler(sectionService)
	authHandler := handlers.NewAuthHandler(authService)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // session cookie flows cross-origin from the admin panel
		MaxAge:           12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	submitRateLimiter := middleware.NewRateLimiter(5, 10)     // 5 req/sec, burst of 10 (prevent form spam)
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // 1 req/sec, burst of 5 (login abuse prevention)

	registerAPIRoutes(router, cfg,
		generalRateLimiter, submitRateLimiter, authRateLimiter,
		healthHandler, submissionHandler, sectionHandler, authHandler)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Write timeout must cover the bounded notifier dispatch window.
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
