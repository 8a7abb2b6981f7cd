package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"mercado-service/internal/api"
	"mercado-service/internal/config"
	"mercado-service/internal/credential"
	"mercado-service/internal/events"
	"mercado-service/internal/media"
	"mercado-service/internal/repository"
	"mercado-service/internal/service"
	"mercado-service/internal/tracing"
	"mercado-service/internal/validation"
	_ "mercado-service/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api.SetupGlobalHandler(cfg.ServiceName, cfg.LogLevel)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	ctx := context.Background()

	shutdownTracer, err := tracing.InitTracerProvider(ctx, cfg.ServiceName, cfg.OtelEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
		}
	}()

	db := connectDB(cfg)
	defer db.Close()

	if err := os.MkdirAll(cfg.UploadTmpDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	imageHost, err := media.NewS3Host(ctx, media.S3Options{
		Endpoint:     cfg.S3Endpoint,
		PublicURL:    cfg.S3PublicURL,
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		Folder:       cfg.S3Folder,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Fatalf("Failed to configure image host: %v", err)
	}
	relay := media.NewRelay(imageHost)

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	credentials := credential.NewService(cfg.JWTSecret, cfg.JWTTTL)
	validate := validation.New()

	userRepo := repository.NewPostgresUserRepository(db)
	itemRepo := repository.NewPostgresItemRepository(db)
	passwordRepo := repository.NewPostgresPasswordRepository(db)

	authService := service.NewAuthService(userRepo, credentials, relay, publisher)
	itemService := service.NewItemService(itemRepo, relay, publisher)
	passwordService := service.NewPasswordService(passwordRepo, relay)

	app := fiber.New(fiber.Config{BodyLimit: cfg.BodyLimit()})
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AppURL,
		AllowCredentials: true,
	}))

	api.SetupRoutes(app, cfg.ServiceName, credentials, api.Handlers{
		Auth:      api.NewAuthHandler(authService, validate, cfg.UploadTmpDir),
		Items:     api.NewItemHandler(itemService, validate, cfg.UploadTmpDir),
		Passwords: api.NewPasswordHandler(passwordService, validate, cfg.UploadTmpDir),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.Info("Server is listening", slog.String("port", cfg.Port))
	// Listen returns nil after a shutdown, letting the deferred closes run.
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server stopped", slog.String("error", err.Error()))
	}
}

// newPublisher connects to NATS when NATS_URL is set; otherwise domain events
// are dropped. The returned func releases the connection.
func newPublisher(cfg *config.Config) (events.EventPublisher, func()) {
	if cfg.NatsURL == "" {
		slog.Info("NATS_URL not set, domain events are disabled")
		return events.NoopPublisher{}, func() {}
	}

	publisher, err := events.NewNatsPublisher(cfg.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	slog.Info("Successfully connected to NATS.")

	return publisher, publisher.Close
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	slog.Info("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	slog.Info("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	slog.Info("Migrations applied successfully!")
}
