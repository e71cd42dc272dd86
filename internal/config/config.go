// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

// --------------------------------------------------------------------------
// Table names, matching sql/schema.sql
// --------------------------------------------------------------------------

const (
	TeamsTable           = "teams"
	PlayersTable         = "players"
	GamesTable           = "games"
	PlayerGameStatsTable = "player_game_stats"
	EntriesTable         = "fantasy_entries"
	EntryPicksTable      = "fantasy_entry_picks"
	SeasonStatsView      = "mv_player_season_stats"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Offline source, used when no database is configured
	TournamentFile string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool

	// Scoring
	ScoringTableFile string
	Scoring          fantasy.ScoringTable
	RosterLimits     fantasy.RosterLimits

	// Synthetic leaderboard filler
	Synthetic SyntheticConfig

	// Maintenance
	SeasonRefreshInterval time.Duration
}

// SyntheticConfig holds the generator defaults used when a request does not
// override them.
type SyntheticConfig struct {
	Seed    string
	Count   int
	MinSize int
	MaxSize int
	MinReal int
}

// SeedFor returns the generator seed for a division. Each division gets
// its own stream so the two leaderboards are independent.
func (s SyntheticConfig) SeedFor(div fantasy.Division) string {
	return s.Seed + ":" + string(div)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}
	cfg, err := LoadOffline()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dbURL
	return cfg, nil
}

// LoadOffline reads everything except the database settings. Used by CLI
// commands that work from a tournament file.
func LoadOffline() (*Config, error) {
	cfg := &Config{
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		TournamentFile: envOr("TOURNAMENT_FILE", ""),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8081",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),

		ScoringTableFile: envOr("SCORING_TABLE_FILE", ""),
		RosterLimits: fantasy.RosterLimits{
			fantasy.DivisionBoys:  envInt("ROSTER_LIMIT_BOYS", 5),
			fantasy.DivisionGirls: envInt("ROSTER_LIMIT_GIRLS", 5),
		},

		Synthetic: SyntheticConfig{
			Seed:    envOr("SYNTHETIC_SEED", "flagfantasy"),
			Count:   envInt("SYNTHETIC_COUNT", 10),
			MinSize: envInt("SYNTHETIC_MIN_SIZE", 5),
			MaxSize: envInt("SYNTHETIC_MAX_SIZE", 7),
			MinReal: envInt("SYNTHETIC_MIN_REAL", 10),
		},

		SeasonRefreshInterval: time.Duration(envInt("SEASON_REFRESH_MINUTES", 10)) * time.Minute,
	}

	cfg.Scoring = fantasy.DefaultScoringTable()
	if cfg.ScoringTableFile != "" {
		table, err := LoadScoringTable(cfg.ScoringTableFile)
		if err != nil {
			return nil, err
		}
		cfg.Scoring = table
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
