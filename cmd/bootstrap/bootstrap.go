package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointment-scheduling-service/config"
	deliveryHttp "appointment-scheduling-service/internal/delivery/http"
	"appointment-scheduling-service/internal/delivery/http/handler"
	"appointment-scheduling-service/internal/delivery/http/middleware"
	"appointment-scheduling-service/internal/infrastructure/cache"
	"appointment-scheduling-service/internal/repository"
	"appointment-scheduling-service/internal/service"
	"appointment-scheduling-service/internal/usecase"
	"appointment-scheduling-service/pkg/metrics"
	"appointment-scheduling-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const metricsNamespace = "appointment_scheduling"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	RedisClient *redis.Client
	SlotLocker  *service.SlotLocker
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	log := setupLogger(cfg.Log)
	log.Info("Configuration loaded successfully")

	return NewWithConfig(cfg, log)
}

// NewWithConfig wires the application from an already loaded configuration
func NewWithConfig(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Log:    log,
	}

	// Initialize Redis
	var idempotencyStore service.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		idempotencyStore = service.NewRedisIdempotencyStore(redisClient, log)
		log.Info("Using Redis idempotency store")
	} else {
		idempotencyStore = service.NewMemoryIdempotencyStore()
		log.Info("REDIS_HOST not set, using in-memory idempotency store")
	}

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	if cfg.App.SeedDemoData {
		if err := SeedDemoAppointments(context.Background(), appointmentRepo, time.Now()); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		log.Infof("Seeded %d demo appointments", len(demoAppointments))
	}

	// Initialize services
	collector := metrics.NewCollector(metricsNamespace)
	customValidator := validator.NewValidator()
	app.SlotLocker = service.NewSlotLocker(log)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, app.SlotLocker, auditService, collector, customValidator)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	metricsMiddleware := middleware.NewMetricsMiddleware(collector)
	idempotencyMiddleware := middleware.NewIdempotencyMiddleware(idempotencyStore, cfg.Idempotency.TTL, log, collector)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		appointmentHandler,
		auditLogHandler,
		loggingMiddleware,
		metricsMiddleware,
		idempotencyMiddleware,
		corsMiddleware,
		collector,
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, falling back to info", cfg.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases background workers and connections
func (app *App) Close() {
	if app.SlotLocker != nil {
		app.SlotLocker.Stop()
	}

	// Close Redis connection
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis client: %+v", err)
		}
	}
}
