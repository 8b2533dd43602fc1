package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/eventdeck/internal/catalog"
	"github.com/JonMunkholm/eventdeck/internal/config"
	"github.com/JonMunkholm/eventdeck/internal/logging"
	"github.com/JonMunkholm/eventdeck/internal/source"
	"github.com/JonMunkholm/eventdeck/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Source.Kind(),
		"refresh_interval", cfg.Source.RefreshInterval,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Candidate header names for title and start-date resolution
	fields := catalog.DefaultFields()
	if cfg.Source.FieldsFile != "" {
		fields, err = catalog.LoadFields(cfg.Source.FieldsFile)
		if err != nil {
			slog.Error("failed to load fields file",
				"path", cfg.Source.FieldsFile,
				"error", err,
			)
			os.Exit(1)
		}
		slog.Info("loaded field mapping", "path", cfg.Source.FieldsFile)
	}

	loader := &source.Loader{
		Path:         cfg.Source.Path,
		URL:          cfg.Source.URL,
		FetchTimeout: cfg.Source.FetchTimeout,
	}

	store := catalog.NewStore(loader)

	// Initial load. With a refresh interval configured a failure is retried
	// by the scheduler; otherwise there is nothing to serve, so fail fast.
	ctx := context.Background()
	snap, err := store.Reload(ctx)
	if err != nil {
		if cfg.Source.RefreshInterval <= 0 {
			slog.Error("failed to load source document", "error", err)
			os.Exit(1)
		}
		slog.Warn("initial load failed, will retry on refresh", "error", err)
	} else {
		slog.Info("source loaded",
			"snapshot_id", snap.ID,
			"source", snap.SourceName,
			"records", len(snap.Records),
		)
	}

	// Create server with config
	server := web.NewServer(store, fields, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// Periodic source refresh
	go store.StartRefresh(jobCtx, cfg.Source.RefreshInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
