// Command api is the Flag Fantasy API server.
//
// Usage:
//
//	flagfantasy-api
//	API_PORT=8080 flagfantasy-api
//	TOURNAMENT_FILE=tournament.json flagfantasy-api

// @title Flag Fantasy API
// @version 1.0.0
// @description Fantasy scoring and deterministic leaderboards for a two-division flag football tournament.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Flag Fantasy
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/flagfantasy/internal/api"
	"github.com/albapepper/flagfantasy/internal/cache"
	"github.com/albapepper/flagfantasy/internal/config"
	"github.com/albapepper/flagfantasy/internal/db"
	"github.com/albapepper/flagfantasy/internal/listener"
	"github.com/albapepper/flagfantasy/internal/maintenance"
	"github.com/albapepper/flagfantasy/internal/metrics"
	"github.com/albapepper/flagfantasy/internal/tournament"

	_ "github.com/albapepper/flagfantasy/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration. Without DATABASE_URL the server runs read-only
	// from TOURNAMENT_FILE.
	offline := os.Getenv("DATABASE_URL") == ""
	var (
		cfg *config.Config
		err error
	)
	if offline {
		cfg, err = config.LoadOffline()
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	m := metrics.New()

	// Tournament source
	var (
		src  tournament.Source
		pool *db.Pool
	)
	if offline {
		if cfg.TournamentFile == "" {
			logger.Error("Either DATABASE_URL or TOURNAMENT_FILE must be set")
			os.Exit(1)
		}
		fileSrc, err := tournament.OpenFile(cfg.TournamentFile, cfg.RosterLimits)
		if err != nil {
			logger.Error("Failed to load tournament file", "file", cfg.TournamentFile, "error", err)
			os.Exit(1)
		}
		for _, w := range fileSrc.Warnings {
			logger.Warn("Tournament file warning", "detail", w)
		}
		src = fileSrc
		logger.Info("Serving tournament file", "file", cfg.TournamentFile)
	} else {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		src = tournament.NewStore(pool)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	server := api.NewRouter(src, appCache, cfg, m, logger)

	// Start maintenance tickers (season refresh, pick pruning)
	if pool != nil {
		mcfg := maintenance.DefaultConfig(cfg)
		mcfg.Metrics = m
		mcfg.OnRefresh = append(mcfg.OnRefresh, server.Handler.FlushCache)
		go maintenance.Start(ctx, pool, mcfg, logger)

		// Start LISTEN/NOTIFY consumer so seed runs invalidate cached responses
		flush := func(listener.UpdateEvent) { server.Handler.FlushCache() }
		go listener.Start(ctx, cfg.DatabaseURL, []func(listener.UpdateEvent){flush}, logger)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Flag Fantasy API",
			"addr", addr,
			"environment", cfg.Environment,
			"offline", offline,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
