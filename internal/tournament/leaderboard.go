package tournament

import (
	"context"
	"fmt"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

// Leaderboard is a built division leaderboard together with the directory
// it was scored against, so callers can expand any entry's roster.
type Leaderboard struct {
	Division  fantasy.Division
	Seed      string
	Entries   []fantasy.Entry
	Directory *fantasy.Directory
}

// BuildLeaderboard loads the season directory and the division's real
// entries from src and runs them through fantasy.BuildLeaderboard.
func BuildLeaderboard(ctx context.Context, src Source, table fantasy.ScoringTable, opts fantasy.LeaderboardOptions) (*Leaderboard, error) {
	dir, err := src.LoadDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	realEntries, err := src.LoadEntries(ctx, opts.Division)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return &Leaderboard{
		Division:  opts.Division,
		Seed:      opts.Generate.Seed,
		Entries:   fantasy.BuildLeaderboard(dir, table, realEntries, opts),
		Directory: dir,
	}, nil
}
