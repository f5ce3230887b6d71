// Command snapshot fetches the candidate sheet once and prints it as JSON.
// It exits non-zero when the snapshot carries an error status.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/platform/config"
	"stock_dashboard/internal/platform/logger"
)

func main() {
	withCharts := flag.Bool("charts", false, "include price charts for each candidate")
	limit := flag.Int("limit", 0, "number of candidates to expand with charts (0 = all)")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	// stdout carries the JSON; logs go to stderr
	logger.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	app, err := di.NewApp(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	var failed bool
	if *withCharts {
		d := app.Dashboard.Build(ctx, *limit)
		failed = d.Snapshot.Failed()
		err = enc.Encode(d)
	} else {
		snap := app.Candidates.Fetch(ctx)
		failed = snap.Failed()
		err = enc.Encode(snap)
	}
	if err != nil {
		slog.Error("failed to encode output", "error", err)
		failed = true
	}

	if failed {
		// deferred Close/cancel do not run after os.Exit
		app.Close()
		cancel()
		os.Exit(1)
	}
}
