package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/rentora/rentora-api/internal/config"
	"github.com/rentora/rentora-api/internal/database"
	"github.com/rentora/rentora-api/internal/handlers"
	"github.com/rentora/rentora-api/internal/jobs"
	"github.com/rentora/rentora-api/internal/middleware"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/internal/services"
	"github.com/rentora/rentora-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, repos)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health.Index)
		v1.GET("/jobs/status", h.Job.Status)

		// Directory resources
		v1.GET("/owners", h.Owner.Index)
		v1.POST("/owners", h.Owner.Create)

		v1.GET("/shops", h.Shop.Index)
		v1.GET("/shops/:shop_id", h.Shop.Show)
		v1.POST("/shops", h.Shop.Create)

		v1.GET("/tenants", h.Tenant.Index)
		v1.GET("/tenants/:tenant_id", h.Tenant.Show)
		v1.POST("/tenants", h.Tenant.Create)

		// Leases
		leases := v1.Group("/leases")
		{
			leases.GET("", h.Lease.Index)
			leases.POST("", h.Lease.Create)
			leases.GET("/:lease_id", h.Lease.Show)
			leases.POST("/:lease_id/adjust_rent", h.Lease.AdjustRent)
			leases.GET("/:lease_id/ledger", h.Lease.Ledger)
			leases.POST("/:lease_id/reconcile", h.Lease.Reconcile)

			// Termination settlement
			leases.POST("/:lease_id/settlement/preview", h.Settlement.Preview)
			leases.POST("/:lease_id/settlement/confirm", h.Settlement.Confirm)
			leases.GET("/:lease_id/settlement", h.Settlement.Show)
		}

		// Payments
		v1.GET("/payments", h.Payment.Index)
		v1.POST("/payments", h.Payment.Create)
		v1.DELETE("/payments/:payment_id", h.Payment.Delete)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Keep stored lease statuses in line with end dates. Runs immediately on
	// boot so a restarted instance catches up before the first tick.
	worker.ScheduleEveryImmediate(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing lease statuses...")
		return svcs.Lease.RefreshStatuses(ctx)
	})

	// Nightly repair sweep: re-runs the same reconcile the live path uses,
	// so any allocation drift self-heals within a day.
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Reconciling all leases...")
		return svcs.Reconcile.ReconcileAll(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
