package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/config"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqapi"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// runServer starts the HTTP API and blocks until SIGINT/SIGTERM.
func runServer(ctx context.Context, cfg *config.Config) error {
	logx.Info("🚀 Starting FAQ Generator API Server...")

	// 1. Dependency container
	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}

	// 2. Fiber app
	app := newApp(cfg, container)

	// 3. Background services
	if err := container.StartBackgroundServices(ctx); err != nil {
		container.Shutdown(ctx)
		return err
	}

	printRouteSummary(container.FAQ.AdminAuth != nil)

	// 4. Serve with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logx.Info(strings.Repeat("=", 61))
		logx.Infof("🚀 Server listening on port %s", cfg.Server.Port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", cfg.Server.Port)
		logx.Info(strings.Repeat("=", 61))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	return gracefulShutdown(ctx, app, container, errCh)
}

func newApp(cfg *config.Config, container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Server.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          faqapi.ErrorHandler(cfg.Server.Debug),
		BodyLimit:             cfg.Server.BodyLimit,
		IdleTimeout:           2 * time.Minute,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.Server.Debug,
	}))

	app.Use(requestid.New(requestid.Config{
		Header: fiber.HeaderXRequestID,
		Generator: func() string {
			return "req-" + uuid.NewString()
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, DELETE, HEAD, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/", infoHandler(cfg))
	container.FAQ.Handlers.RegisterRoutes(app, container.FAQ.AdminAuth)
	logx.Info("✓ FAQ routes registered")

	app.Use(notFoundHandler)
	return app
}

// ============================================================================
// Handler Functions
// ============================================================================

func infoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":     cfg.Server.AppName,
			"version":     os.Getenv("APP_VERSION"),
			"description": "Generates FAQ documents from public social-media profiles",
			"endpoints": fiber.Map{
				"submit": "POST /api/v1/jobs",
				"status": "GET /api/v1/jobs/:id",
				"delete": "DELETE /api/v1/jobs/:id",
				"legacy": []string{"POST /generate", "GET /status/:id", "GET /result/:id"},
				"health": "GET /health",
			},
		})
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
}

func printRouteSummary(adminAuth bool) {
	guard := "disabled"
	if adminAuth {
		guard = "bearer JWT"
	}
	logx.Info("📋 Route Summary:")
	logx.Info("   ├─ Jobs: /api/v1/jobs, /api/v1/jobs/:id")
	logx.Infof("   ├─ Admin delete: DELETE /api/v1/jobs/:id (%s)", guard)
	logx.Info("   ├─ Legacy: /generate, /status/:id, /result/:id")
	logx.Info("   └─ Health: /health")
}

// gracefulShutdown stops accepting requests first, then waits for running
// jobs so their terminal state is written.
func gracefulShutdown(ctx context.Context, app *fiber.App, container *Container, errCh <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var serveErr error
	select {
	case sig := <-sigChan:
		logx.Infof("🛑 Received signal: %v", sig)
	case serveErr = <-errCh:
		logx.Errorf("Server error: %v", serveErr)
	case <-ctx.Done():
	}

	logx.Info("Shutting down gracefully...")
	if err := app.ShutdownWithTimeout(container.Config.Server.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), container.Config.Jobs.ShutdownTimeout)
	defer cancel()
	container.Shutdown(drainCtx)

	logx.Info("✅ Server exited")
	return serveErr
}
