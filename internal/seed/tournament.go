package seed

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/provider"
)

// SeedTournament runs the full seed flow: teams and players -> games and
// game lines -> entries and picks. Failures are recorded per row and the
// flow continues, except that a team which fails to write skips its
// players.
func SeedTournament(ctx context.Context, db DB, t *provider.Tournament, logger *slog.Logger) SeedResult {
	var result SeedResult

	// 1. Teams and players
	logger.Info("Seeding teams...", "count", len(t.Teams))
	playerOrder := 0
	for i, team := range t.Teams {
		if err := UpsertTeam(ctx, db, team, i); err != nil {
			result.AddErrorf("upsert team %s: %v", team.ID, err)
			playerOrder += len(team.Players)
			continue
		}
		result.TeamsUpserted++
		for _, p := range team.Players {
			if err := UpsertPlayer(ctx, db, p, playerOrder); err != nil {
				result.AddErrorf("upsert player %s: %v", p.ID, err)
			} else {
				result.PlayersUpserted++
			}
			playerOrder++
		}
	}
	logger.Info("Teams done", "teams", result.TeamsUpserted, "players", result.PlayersUpserted)

	// 2. Games
	logger.Info("Seeding games...", "count", len(t.Games))
	for _, g := range t.Games {
		if err := UpsertGame(ctx, db, g); err != nil {
			result.AddErrorf("upsert game %s: %v", g.ID, err)
			continue
		}
		result.GamesUpserted++
		for _, line := range g.Lines {
			if err := UpsertGameLine(ctx, db, g.ID, line); err != nil {
				result.AddErrorf("upsert game %s line %s: %v", g.ID, line.PlayerID, err)
			} else {
				result.GameLinesUpserted++
			}
		}
	}
	logger.Info("Games done", "games", result.GamesUpserted, "lines", result.GameLinesUpserted)

	// 3. Entries
	logger.Info("Seeding entries...", "count", len(t.Entries))
	for _, e := range t.Entries {
		id, err := UpsertEntry(ctx, db, e)
		if err != nil {
			result.AddErrorf("upsert entry %s: %v", e.Username, err)
			continue
		}
		result.EntriesUpserted++
		for _, div := range sortedDivisions(e.Rosters) {
			ids := e.Rosters[div]
			if err := ReplacePicks(ctx, db, id, div, ids); err != nil {
				result.AddErrorf("entry %s %s picks: %v", e.Username, div, err)
				continue
			}
			result.PicksWritten += len(ids)
		}
	}
	logger.Info("Entries done", "entries", result.EntriesUpserted, "picks", result.PicksWritten)

	logger.Info("Tournament seed complete", "summary", result.Summary())
	return result
}

// SeedStatSheet writes one game's score sheet. The game must already exist.
func SeedStatSheet(ctx context.Context, db DB, gameID string, sheet *provider.StatSheet, logger *slog.Logger) SeedResult {
	var result SeedResult

	var one int
	if err := db.QueryRow(ctx, "game_exists", gameID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result.AddErrorf("game %s not found", gameID)
		} else {
			result.AddErrorf("check game %s: %v", gameID, err)
		}
		return result
	}

	for _, name := range sheet.Unknown {
		logger.Warn("Ignoring unknown stat column", "game", gameID, "column", name)
	}

	for _, l := range sheet.Lines {
		line := provider.GameLine{PlayerID: l.PlayerID, Stats: l.Stats}
		if err := UpsertGameLine(ctx, db, gameID, line); err != nil {
			result.AddErrorf("upsert game %s line %s: %v", gameID, l.PlayerID, err)
			continue
		}
		result.GameLinesUpserted++
	}

	logger.Info("Stat sheet seed complete", "game", gameID, "summary", result.Summary())
	return result
}

func sortedDivisions(rosters map[fantasy.Division][]string) []fantasy.Division {
	divs := make([]fantasy.Division, 0, len(rosters))
	for d := range rosters {
		divs = append(divs, d)
	}
	slices.Sort(divs)
	return divs
}
