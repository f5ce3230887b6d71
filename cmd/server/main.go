package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	candidateshandler "stock_dashboard/internal/feature/candidates/transport/handler"
	dashboardhandler "stock_dashboard/internal/feature/dashboard/transport/handler"
	pricehistoryhandler "stock_dashboard/internal/feature/pricehistory/transport/handler"
	"stock_dashboard/internal/platform/config"
	platformhandler "stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/logger"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.NewApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if !app.Credential.Configured() {
		slog.Warn("spreadsheet credential is not set; candidates will report unconfigured", "env", app.Credential.EnvKey())
	}
	if cfg.TwelveData.APIKey == "" {
		slog.Warn("TWELVE_DATA_API_KEY is not set; charts will be unavailable")
	}

	// Handler
	handlers := router.Handlers{
		Health:     platformhandler.NewHealthHandler(app.Caches.Name(), app.Credential),
		Candidates: candidateshandler.NewCandidatesHandler(app.Candidates),
		Chart:      pricehistoryhandler.NewChartHandler(app.PriceHistory),
		Dashboard:  dashboardhandler.NewDashboardHandler(app.Dashboard),
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.NewRouter(handlers, cfg.Server.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr, "cache", app.Caches.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
