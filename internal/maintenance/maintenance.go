// Package maintenance runs periodic background tasks as Go tickers.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/flagfantasy/internal/config"
	"github.com/albapepper/flagfantasy/internal/metrics"
)

// DB is the subset of the pool the tasks need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	SeasonRefreshInterval time.Duration // Rebuild season totals from game lines
	PruneInterval         time.Duration // Drop picks whose player left the division

	// OnRefresh runs after every successful season refresh.
	OnRefresh []func()
	Metrics   *metrics.Metrics
}

// DefaultConfig returns production defaults, taking the refresh interval
// from the application config.
func DefaultConfig(cfg *config.Config) Config {
	return Config{
		SeasonRefreshInterval: cfg.SeasonRefreshInterval,
		PruneInterval:         time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, db DB, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"season_refresh", cfg.SeasonRefreshInterval,
		"prune", cfg.PruneInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.SeasonRefreshInterval > 0 {
		t := time.NewTicker(cfg.SeasonRefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "season_refresh", func() { seasonRefresh(ctx, db, cfg, logger) })
	}

	if cfg.PruneInterval > 0 {
		t := time.NewTicker(cfg.PruneInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "prune", func() { prunePicks(ctx, db, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, name string, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// seasonRefresh rebuilds the season view and then runs the refresh hooks.
// Hooks are skipped when the refresh fails so cached responses stay
// consistent with the data they were built from.
func seasonRefresh(ctx context.Context, db DB, cfg Config, logger *slog.Logger) {
	err := RefreshMaterializedViews(ctx, db, logger)
	if cfg.Metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		cfg.Metrics.SeasonRefreshes.WithLabelValues(outcome).Inc()
	}
	if err != nil {
		return
	}
	for _, hook := range cfg.OnRefresh {
		hook()
	}
}

// prunePicks removes picks pointing at players that no longer exist in the
// pick's division, e.g. after a re-seed moved a player.
func prunePicks(ctx context.Context, db DB, logger *slog.Logger) {
	tag, err := db.Exec(ctx, `
		DELETE FROM `+config.EntryPicksTable+` k
		WHERE NOT EXISTS (
			SELECT 1 FROM `+config.PlayersTable+` p
			WHERE p.id = k.player_id AND p.division = k.division
		)`)
	if err != nil {
		logger.Warn("Prune: failed to remove orphaned picks", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Prune: removed orphaned picks", "count", tag.RowsAffected())
	}
}
