// Command ingest is the Flag Fantasy data ingestion CLI.
//
// Usage:
//
//	flagfantasy-ingest migrate --file sql/schema.sql
//	flagfantasy-ingest validate --file tournament.json
//	flagfantasy-ingest seed tournament --file tournament.json
//	flagfantasy-ingest seed sheet --file day2-game3.xlsx --game game-7
//	flagfantasy-ingest refresh
//	flagfantasy-ingest leaderboard --division girls --count 20 --xlsx girls.xlsx
//	flagfantasy-ingest leaderboard --division boys --file tournament.json
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/flagfantasy/internal/config"
	"github.com/albapepper/flagfantasy/internal/db"
	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/listener"
	"github.com/albapepper/flagfantasy/internal/maintenance"
	"github.com/albapepper/flagfantasy/internal/provider"
	"github.com/albapepper/flagfantasy/internal/seed"
	"github.com/albapepper/flagfantasy/internal/tournament"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "flagfantasy-ingest",
		Short:        "Flag Fantasy data ingestion CLI",
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(refreshCmd())
	root.AddCommand(leaderboardCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate / validate
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema file to the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// The pooled connections prepare statements against tables this
			// command creates, so it uses a plain connection.
			conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer conn.Close(context.Background())

			if _, err := conn.Exec(ctx, string(schema)); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			logger.Info("Schema applied", "file", file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "sql/schema.sql", "Schema file")
	return cmd
}

func validateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Decode and validate a tournament export without writing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOffline()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			t, warnings, err := provider.LoadTournamentFile(file, cfg.RosterLimits)
			if err != nil {
				return err
			}
			logWarnings(warnings)
			logger.Info("Tournament valid",
				"teams", len(t.Teams),
				"players", t.Directory().Len(),
				"games", len(t.Games),
				"entries", len(t.Entries),
				"warnings", len(warnings))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Tournament export (JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed tournament data into Postgres",
	}
	cmd.AddCommand(seedTournamentCmd())
	cmd.AddCommand(seedSheetCmd())
	return cmd
}

func seedTournamentCmd() *cobra.Command {
	var (
		file        string
		skipRefresh bool
	)
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Seed teams, players, games and entries from a tournament export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				t, warnings, err := provider.LoadTournamentFile(file, cfg.RosterLimits)
				if err != nil {
					return err
				}
				logWarnings(warnings)

				start := time.Now()
				result := seed.SeedTournament(ctx, pool, t, logger)
				logger.Info("Tournament seed finished", "duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
				return finishSeed(ctx, pool, result, listener.UpdateEvent{Kind: listener.KindTournament}, skipRefresh)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Tournament export (JSON)")
	cmd.Flags().BoolVar(&skipRefresh, "skip-refresh", false, "Skip the season view refresh after seeding")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func seedSheetCmd() *cobra.Command {
	var (
		file        string
		gameID      string
		skipRefresh bool
	)
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Seed one game's stat lines from an XLSX score sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open sheet: %w", err)
			}
			defer f.Close()
			sheet, err := provider.ReadStatSheet(f)
			if err != nil {
				return err
			}
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				result := seed.SeedStatSheet(ctx, pool, gameID, sheet, logger)
				logger.Info("Stat sheet seed finished", "game", gameID, "duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
				return finishSeed(ctx, pool, result, listener.UpdateEvent{Kind: listener.KindStatSheet, GameID: gameID}, skipRefresh)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Score sheet (XLSX)")
	cmd.Flags().StringVar(&gameID, "game", "", "Game ID the sheet belongs to")
	cmd.Flags().BoolVar(&skipRefresh, "skip-refresh", false, "Skip the season view refresh after seeding")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}

// finishSeed logs per-row errors, refreshes the season view and tells
// running API servers to drop their caches. Row errors fail the command
// only when nothing at all was written.
func finishSeed(ctx context.Context, pool *db.Pool, result seed.SeedResult, event listener.UpdateEvent, skipRefresh bool) error {
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
	written := result.TeamsUpserted + result.PlayersUpserted + result.GamesUpserted +
		result.GameLinesUpserted + result.EntriesUpserted
	if result.Failed() && written == 0 {
		return fmt.Errorf("seed failed: %d errors", len(result.Errors))
	}
	if !skipRefresh {
		if err := maintenance.RefreshMaterializedViews(ctx, pool, logger); err != nil {
			return err
		}
	}
	event.Rows = written
	if err := listener.Publish(ctx, pool, event); err != nil {
		logger.Warn("Failed to publish update event", "error", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// refresh command
// --------------------------------------------------------------------------

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh materialized views (season totals)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := maintenance.RefreshMaterializedViews(ctx, pool, logger); err != nil {
					return err
				}
				return listener.Publish(ctx, pool, listener.UpdateEvent{Kind: listener.KindRefresh})
			})
		},
	}
}

// --------------------------------------------------------------------------
// leaderboard command
// --------------------------------------------------------------------------

type leaderboardFlags struct {
	division string
	seed     string
	count    int
	minSize  int
	maxSize  int
	minReal  int
	user     string
	file     string
	xlsx     string
}

func leaderboardCmd() *cobra.Command {
	var f leaderboardFlags
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print or export a division leaderboard",
		Long: "Builds a division leaderboard from the database, or from a tournament " +
			"export when --file is given. The same flags always produce the same board.",
		RunE: func(cmd *cobra.Command, args []string) error {
			div, err := fantasy.ParseDivision(f.division)
			if err != nil {
				return err
			}
			run := func(ctx context.Context, cfg *config.Config, src tournament.Source) error {
				opts := leaderboardOptions(cmd, cfg, div, f)
				lb, err := tournament.BuildLeaderboard(ctx, src, cfg.Scoring, opts)
				if err != nil {
					return err
				}
				if f.xlsx != "" {
					return exportLeaderboard(f.xlsx, lb)
				}
				return printLeaderboard(cmd.OutOrStdout(), lb)
			}

			if f.file != "" {
				ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
				defer cancel()
				cfg, err := config.LoadOffline()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				src, err := tournament.OpenFile(f.file, cfg.RosterLimits)
				if err != nil {
					return err
				}
				logWarnings(src.Warnings)
				return run(ctx, cfg, src)
			}
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				return run(ctx, cfg, tournament.NewStore(pool))
			})
		},
	}
	cmd.Flags().StringVar(&f.division, "division", "", "Division (boys, girls)")
	cmd.Flags().StringVar(&f.seed, "seed", "", "Generator seed (default: SYNTHETIC_SEED:<division>)")
	cmd.Flags().IntVar(&f.count, "count", 0, "Synthetic entries (default: SYNTHETIC_COUNT)")
	cmd.Flags().IntVar(&f.minSize, "min-size", 0, "Minimum synthetic roster size (default: SYNTHETIC_MIN_SIZE)")
	cmd.Flags().IntVar(&f.maxSize, "max-size", 0, "Maximum synthetic roster size (default: SYNTHETIC_MAX_SIZE)")
	cmd.Flags().IntVar(&f.minReal, "min-real", 0, "Real entries at which filler stops (default: SYNTHETIC_MIN_REAL)")
	cmd.Flags().StringVar(&f.user, "user", "", "Include a real entrant drawn from the synthetic stream")
	cmd.Flags().StringVar(&f.file, "file", "", "Read from a tournament export instead of the database")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "Write the leaderboard to this XLSX file instead of stdout")
	_ = cmd.MarkFlagRequired("division")
	return cmd
}

// leaderboardOptions fills unset flags from the synthetic config.
func leaderboardOptions(cmd *cobra.Command, cfg *config.Config, div fantasy.Division, f leaderboardFlags) fantasy.LeaderboardOptions {
	syn := cfg.Synthetic
	gen := fantasy.GenerateOptions{
		Seed:    syn.SeedFor(div),
		Count:   syn.Count,
		MinSize: syn.MinSize,
		MaxSize: syn.MaxSize,
	}
	minReal := syn.MinReal

	flags := cmd.Flags()
	if flags.Changed("seed") {
		gen.Seed = f.seed
	}
	if flags.Changed("count") {
		gen.Count = f.count
	}
	if flags.Changed("min-size") {
		gen.MinSize = f.minSize
	}
	if flags.Changed("max-size") {
		gen.MaxSize = f.maxSize
	}
	if flags.Changed("min-real") {
		minReal = f.minReal
	}
	if f.user != "" {
		gen.IncludeReal = &fantasy.RealEntrant{Username: f.user}
	}
	return fantasy.LeaderboardOptions{Division: div, Generate: gen, MinReal: minReal}
}

func printLeaderboard(w io.Writer, lb *tournament.Leaderboard) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s leaderboard (seed %q)\n", lb.Division, lb.Seed)
	fmt.Fprintln(tw, "RANK\tENTRY\tNAME\tPOINTS\tROSTER")
	for i, e := range lb.Entries {
		name := e.DisplayName
		if e.Synthetic {
			name += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%s\n", i+1, e.EntryID, name, e.TotalPoints, strings.Join(e.Roster, ","))
	}
	return tw.Flush()
}

func exportLeaderboard(path string, lb *tournament.Leaderboard) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := provider.WriteLeaderboardSheet(out, lb.Division, lb.Entries); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	logger.Info("Leaderboard exported", "file", path, "division", lb.Division, "entries", len(lb.Entries))
	return nil
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func logWarnings(warnings []string) {
	for _, w := range warnings {
		logger.Warn("ingest warning", "detail", w)
	}
}

// runSeed handles config loading, DB connection, and context cancellation.
func runSeed(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
