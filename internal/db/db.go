// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/flagfantasy/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Statements lists every prepared statement by name. Rows are ordered
// explicitly wherever the result feeds the synthetic generator, because
// pool order is part of its input.
var Statements = map[string]string{
	// Health
	"health_check": "SELECT 1",

	// Directory
	"load_teams": `SELECT id, name, division, COALESCE(captain, ''), wins, losses
		FROM teams ORDER BY sort_order, id`,
	"load_players": `SELECT p.id, p.team_id, p.name, p.division, COALESCE(s.stats, p.season_stats)
		FROM players p
		LEFT JOIN mv_player_season_stats s ON s.player_id = p.id
		ORDER BY p.sort_order, p.id`,
	"load_game_lines": `SELECT p.id, p.team_id, p.name, p.division, g.stats
		FROM player_game_stats g
		JOIN players p ON p.id = g.player_id
		WHERE g.game_id = $1
		ORDER BY p.sort_order, p.id`,
	"game_exists": "SELECT 1 FROM games WHERE id = $1",

	// Entries
	"load_entries": `SELECT e.id::text, e.username, e.display_name, k.player_id
		FROM fantasy_entries e
		JOIN fantasy_entry_picks k ON k.entry_id = e.id
		WHERE k.division = $1
		ORDER BY e.created_at, e.id, k.pick_order`,
	"entry_by_username": "SELECT id FROM fantasy_entries WHERE username = $1",
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
