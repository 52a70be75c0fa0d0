package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-agenda/config"
	deliveryHttp "clinic-agenda/internal/delivery/http"
	"clinic-agenda/internal/delivery/http/handler"
	"clinic-agenda/internal/delivery/http/middleware"
	"clinic-agenda/internal/delivery/ws"
	"clinic-agenda/internal/infrastructure/cache"
	"clinic-agenda/internal/infrastructure/database"
	"clinic-agenda/internal/repository"
	"clinic-agenda/internal/service"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/jwt"
	"clinic-agenda/pkg/metrics"
	"clinic-agenda/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Outbox      *service.OutboxDispatcher
	Cleanup     *service.TenantCleanupService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App)
	app.Log.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB, app.Log); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, app.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	app.initialize(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initialize wires repositories, services, usecases and the HTTP server
func (app *App) initialize(reg prometheus.Registerer, gatherer prometheus.Gatherer) {
	cfg, db, log := app.Config, app.DB, app.Log

	collector := metrics.NewCollector(reg)
	jwtService := jwt.NewJWTService(cfg.Auth)
	customValidator := validator.NewValidator()

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository()
	memberRepo := repository.NewMemberRepository()
	professionalRepo := repository.NewProfessionalRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	blockedDayRepo := repository.NewBlockedDayRepository()
	holidayRepo := repository.NewHolidayRepository()
	conversationRepo := repository.NewConversationRepository()
	messageRepo := repository.NewMessageRepository()
	outboxRepo := repository.NewOutboxRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	presenceRepo := repository.NewPresenceRepository(app.RedisClient, cfg.Realtime.PresenceTTL)

	// Realtime hub and services
	hub := ws.NewHub()
	auditService := service.NewAuditService(log, auditLogRepo)
	subscriptionCache := service.NewSubscriptionCache(db, app.RedisClient, log, orgRepo, cfg.Stripe.SubscriptionCacheTTL)
	app.Outbox = service.NewOutboxDispatcher(db, log, outboxRepo, hub, collector).
		WithBatchSize(cfg.Realtime.OutboxBatchSize).
		WithInterval(cfg.Realtime.OutboxInterval)
	app.Cleanup = service.NewTenantCleanupService(db, log, orgRepo, memberRepo, outboxRepo, subscriptionCache, collector,
		cfg.Cleanup.Interval, cfg.Cleanup.CanceledRetention, cfg.Cleanup.InviteTTL)

	// Initialize usecases
	blockedDayUsecase := usecase.NewBlockedDayUsecase(db, log, blockedDayRepo, appointmentRepo, professionalRepo, auditService, collector)
	holidayUsecase := usecase.NewHolidayUsecase(db, log, holidayRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, professionalRepo, blockedDayRepo, auditService)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, professionalRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	conversationUsecase := usecase.NewConversationUsecase(db, log, conversationRepo, messageRepo, professionalRepo, app.Outbox)
	presenceUsecase := usecase.NewPresenceUsecase(log, presenceRepo, hub)
	organizationUsecase := usecase.NewOrganizationUsecase(db, log, orgRepo, memberRepo, professionalRepo, holidayRepo,
		auditService, subscriptionCache, cfg.Cleanup.InviteTTL)
	billingUsecase := usecase.NewBillingUsecase(db, log, orgRepo, auditService, subscriptionCache, collector, cfg.Stripe.WebhookSecret)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.Realtime.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(deliveryHttp.RouterDeps{
		BlockedDayHandler:   handler.NewBlockedDayHandler(blockedDayUsecase, customValidator),
		HolidayHandler:      handler.NewHolidayHandler(holidayUsecase, customValidator),
		AppointmentHandler:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		ConversationHandler: handler.NewConversationHandler(conversationUsecase, customValidator),
		OrganizationHandler: handler.NewOrganizationHandler(organizationUsecase, customValidator),
		AuditLogHandler:     handler.NewAuditLogHandler(auditLogUsecase),
		BillingHandler:      handler.NewBillingHandler(billingUsecase),
		PresenceHandler:     handler.NewPresenceHandler(presenceUsecase),
		EntityRegistry: handler.NewEntityRegistry(
			handler.NewProfessionalHandler(professionalUsecase, customValidator),
			handler.NewPatientHandler(patientUsecase, customValidator),
		),
		SocketHandler:          ws.NewHandler(hub, log, conversationUsecase, presenceUsecase, collector, corsMiddleware.AllowOrigin),
		MetricsHandler:         metrics.Handler(gatherer),
		AuthMiddleware:         middleware.NewAuthMiddleware(jwtService),
		TenantMiddleware:       middleware.NewTenantMiddleware(log, organizationUsecase),
		SubscriptionMiddleware: middleware.NewSubscriptionMiddleware(log, subscriptionCache),
		CORSMiddleware:         corsMiddleware,
		LoggingMiddleware:      middleware.NewLoggingMiddleware(log, collector),
	})

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and the background workers, and blocks until a
// signal arrives or one of them fails
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return app.Outbox.Run(gctx)
	})
	g.Go(func() error {
		return app.Cleanup.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		app.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Server.Shutdown(shutdownCtx); err != nil {
			app.Log.Errorf("Server forced to shutdown: %v", err)
		}
		return nil
	})

	err := g.Wait()
	app.Close()
	app.Log.Info("Server shutdown complete")
	return err
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
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
