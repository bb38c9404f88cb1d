package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/waykit"
	"github.com/samirrijal/waykit/internal/gateway"
	"github.com/samirrijal/waykit/internal/pkg/config"
	"github.com/samirrijal/waykit/internal/pkg/logging"
	"github.com/samirrijal/waykit/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("waykit-gateway")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Upstream routing client
	if cfg.Upstream.AccessToken == "" {
		slog.Warn("upstream access token is empty; routing requests will be rejected upstream")
	}
	client := waykit.NewClient(waykit.ClientConfig{
		BaseURL:     cfg.Upstream.BaseURL,
		AccessToken: cfg.Upstream.AccessToken,
		HTTPClient:  &http.Client{Timeout: time.Duration(cfg.Upstream.Timeout) * time.Second},
	})

	deps := &gateway.Dependencies{
		Routing:        client,
		DefaultProfile: waykit.Profile(cfg.Upstream.DefaultProfile),
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Waykit Gateway",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.waykit.dev",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	gateway.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("gateway starting", "addr", addr, "upstream", cfg.Upstream.BaseURL, "profile", cfg.Upstream.DefaultProfile)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("gateway stopped")
}
