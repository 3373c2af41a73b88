package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arslanrestlos/terminbuchung/config"
	deliveryHttp "github.com/arslanrestlos/terminbuchung/internal/delivery/http"
	"github.com/arslanrestlos/terminbuchung/internal/delivery/http/handler"
	"github.com/arslanrestlos/terminbuchung/internal/delivery/http/middleware"
	"github.com/arslanrestlos/terminbuchung/internal/infrastructure/cache"
	"github.com/arslanrestlos/terminbuchung/internal/infrastructure/database"
	"github.com/arslanrestlos/terminbuchung/internal/repository"
	"github.com/arslanrestlos/terminbuchung/internal/service"
	"github.com/arslanrestlos/terminbuchung/internal/usecase"
	"github.com/arslanrestlos/terminbuchung/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Reconciler  *service.ReconcilerService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, reconciler := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Reconciler = reconciler

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.ReconcilerService) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	availabilityCache := service.NewAvailabilityCacheService(redisClient, log, cfg.Reservation.CacheTTL)
	reconciler := service.NewReconcilerService(appointmentRepo, log, cfg.Reservation.ReconcileInterval)

	// Initialize usecases
	reservationUsecase := usecase.NewReservationUsecase(log, bookingRepo, appointmentRepo, userRepo, availabilityCache, cfg.Reservation)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, availabilityCache)
	dashboardUsecase := usecase.NewDashboardUsecase(log, appointmentRepo, bookingRepo, userRepo, availabilityCache)
	userUsecase := usecase.NewUserUsecase(log, userRepo)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(reservationUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(appointmentHandler, bookingHandler, dashboardHandler, userHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, reconciler
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and closes all connections
func (app *App) Close() {
	// Stop the counter reconciler
	if app.Reconciler != nil {
		app.Reconciler.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
