package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/flagfantasy/internal/config"
	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/provider"
)

// DB is the subset of pgxpool.Pool the upserts need. *db.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UpsertTeam writes a team to the teams table. order fixes its position in
// directory listings.
func UpsertTeam(ctx context.Context, db DB, team fantasy.Team, order int) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.TeamsTable+` (
			id, name, division, captain, wins, losses, sort_order
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			division = EXCLUDED.division,
			captain = EXCLUDED.captain,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			sort_order = EXCLUDED.sort_order,
			updated_at = NOW()`,
		team.ID, team.Name, string(team.Division), nilEmpty(team.Captain),
		team.Record.Wins, team.Record.Losses, order,
	)
	return err
}

// UpsertPlayer writes a player and the season totals recorded for them.
func UpsertPlayer(ctx context.Context, db DB, player fantasy.Player, order int) error {
	stats, err := marshalLine(player.Stats)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (
			id, team_id, name, division, season_stats, sort_order
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			name = EXCLUDED.name,
			division = EXCLUDED.division,
			season_stats = EXCLUDED.season_stats,
			sort_order = EXCLUDED.sort_order,
			updated_at = NOW()`,
		player.ID, player.TeamID, player.Name, string(player.Division), stats, order,
	)
	return err
}

// UpsertGame writes a game's schedule row. Lines are written separately.
func UpsertGame(ctx context.Context, db DB, game provider.Game) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.GamesTable+` (
			id, day, home_team_id, away_team_id, start_time
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET
			day = EXCLUDED.day,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			start_time = EXCLUDED.start_time,
			updated_at = NOW()`,
		game.ID, game.Day, nilEmpty(game.HomeTeamID), nilEmpty(game.AwayTeamID), game.StartTime,
	)
	return err
}

// UpsertGameLine writes one player's line for one game, replacing any
// earlier line for the same pair.
func UpsertGameLine(ctx context.Context, db DB, gameID string, line provider.GameLine) error {
	stats, err := marshalLine(line.Stats)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
		INSERT INTO `+config.PlayerGameStatsTable+` (game_id, player_id, stats)
		VALUES ($1,$2,$3)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			stats = EXCLUDED.stats,
			updated_at = NOW()`,
		gameID, line.PlayerID, stats,
	)
	return err
}

// UpsertEntry writes an entry keyed by username and returns its ID. A new
// entry keeps the source's ID when it is a UUID, otherwise it gets a fresh
// one; an existing entry keeps the ID it already has.
func UpsertEntry(ctx context.Context, db DB, entry provider.Entry) (uuid.UUID, error) {
	id, err := uuid.Parse(entry.ID)
	if err != nil {
		id = uuid.New()
	}
	var stored uuid.UUID
	err = db.QueryRow(ctx, `
		INSERT INTO `+config.EntriesTable+` (id, username, display_name)
		VALUES ($1,$2,$3)
		ON CONFLICT (username) DO UPDATE SET
			display_name = EXCLUDED.display_name
		RETURNING id`,
		id, entry.Username, entry.DisplayName,
	).Scan(&stored)
	if err != nil {
		return uuid.Nil, err
	}
	return stored, nil
}

// ReplacePicks overwrites an entry's picks for one division, preserving
// pick order.
func ReplacePicks(ctx context.Context, db DB, entryID uuid.UUID, div fantasy.Division, playerIDs []string) error {
	if _, err := db.Exec(ctx,
		`DELETE FROM `+config.EntryPicksTable+` WHERE entry_id = $1 AND division = $2`,
		entryID, string(div),
	); err != nil {
		return fmt.Errorf("clear picks: %w", err)
	}
	for i, playerID := range playerIDs {
		if _, err := db.Exec(ctx, `
			INSERT INTO `+config.EntryPicksTable+` (entry_id, division, player_id, pick_order)
			VALUES ($1,$2,$3,$4)`,
			entryID, string(div), playerID, i,
		); err != nil {
			return fmt.Errorf("insert pick %s: %w", playerID, err)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// marshalLine encodes a stat line as a jsonb object, dropping zero
// counters. A nil line becomes {}.
func marshalLine(line fantasy.StatLine) ([]byte, error) {
	out := make(map[fantasy.Counter]int, len(line))
	for c, n := range line {
		if n != 0 {
			out[c] = n
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal stat line: %w", err)
	}
	return b, nil
}
