package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"audiodrop/docs"
	"audiodrop/internal/config"
	"audiodrop/internal/database"
	"audiodrop/internal/database/migration"
	handlers "audiodrop/internal/http/handler"
	"audiodrop/internal/http/middleware"
	"audiodrop/internal/logger"
	"audiodrop/internal/otel"
	"audiodrop/internal/repository/postgres"
	"audiodrop/internal/service"
	"audiodrop/internal/session"
	"audiodrop/internal/storage"
)

// @title Audiodrop API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := logger.LoadLocation(cfg.Timezone)
	log := logger.New(cfg.LogMode, loc)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	objStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}

	sessions, err := session.NewManager(cfg.Auth)
	if err != nil {
		log.Fatal("failed to initialize sessions", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatal("failed to register service metrics", zap.Error(err))
	}

	// Initialize repositories and services
	audioRepo := postgres.NewAudioFilePostgres(db)
	audioSvc := service.NewAudioService(objStore, audioRepo, log, metrics)

	views, err := handlers.NewRenderer()
	if err != nil {
		log.Fatal("failed to parse templates", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.UploadBodyLimitMB * 1024 * 1024,
		DisableStartupMessage: cfg.LogMode == logger.ProductionMode,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(log))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:           db,
		Audio:        audioSvc,
		Auth:         sessions,
		Views:        views,
		Log:          log,
		SiteName:     cfg.SiteName,
		CookieSecure: cfg.Auth.CookieSecure,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting_down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", zap.String("addr", addr), zap.String("storage_driver", cfg.Storage.Driver))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracing shutdown failed", zap.Error(err))
	}
}
