package main

import (
	"context"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/database/migration"
	handlers "docvault/internal/http/handler"
	"docvault/internal/http/middleware"
	"docvault/internal/logger"
	"docvault/internal/otel"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	"docvault/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	objStore, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blob storage")
	}

	// Repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	svcs := handlers.Services{
		Auth:      service.NewAuthService(userRepo, cfg.Auth.JWTSecret, tokenTTL),
		Documents: service.NewDocumentService(objStore, docRepo),
		Users:     service.NewUserService(userRepo),
		Stats:     service.NewStatsService(docRepo, userRepo),
		TokenTTL:  tokenTTL,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    service.MaxUploadSize + 1<<20, // headroom for multipart framing
	})

	// Global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svcs)

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// newStorage picks the blob backend from configuration: a MinIO bucket by
// default, or a local directory when STORAGE_DRIVER=fs.
func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.Storage.Driver == "fs" {
		return storage.NewFS(cfg.Storage.LocalDir)
	}
	return storage.NewMinIO(cfg.MinIO)
}
