// Package tournament reads teams, players, game lines and entries for the
// scoring engine, either from Postgres or from a tournament export file.
package tournament

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/flagfantasy/internal/db"
	"github.com/albapepper/flagfantasy/internal/fantasy"
	"github.com/albapepper/flagfantasy/internal/provider"
)

var ErrGameNotFound = errors.New("game not found")

// Source is the read side the API and CLI share.
type Source interface {
	LoadTeams(ctx context.Context) ([]fantasy.Team, error)
	LoadDirectory(ctx context.Context) (*fantasy.Directory, error)
	LoadGameLines(ctx context.Context, gameID string) (*fantasy.Directory, error)
	LoadEntries(ctx context.Context, div fantasy.Division) ([]fantasy.RosterSpec, error)
	HealthCheck(ctx context.Context) error
}

// --------------------------------------------------------------------------
// Postgres
// --------------------------------------------------------------------------

// Store reads through the prepared statements registered on the pool.
type Store struct {
	pool *db.Pool
}

func NewStore(pool *db.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.HealthCheck(ctx)
}

// LoadTeams returns every team with its players attached, in sort order.
// Season lines come from the season view, falling back to the totals
// recorded at ingestion for players without game lines.
func (s *Store) LoadTeams(ctx context.Context) ([]fantasy.Team, error) {
	rows, err := s.pool.Query(ctx, "load_teams")
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	var teams []fantasy.Team
	index := make(map[string]int)
	for rows.Next() {
		var t fantasy.Team
		var div string
		if err := rows.Scan(&t.ID, &t.Name, &div, &t.Captain, &t.Record.Wins, &t.Record.Losses); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan team: %w", err)
		}
		t.Division = fantasy.Division(div)
		index[t.ID] = len(teams)
		teams = append(teams, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}

	players, err := s.queryPlayers(ctx, "load_players")
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if i, ok := index[p.TeamID]; ok {
			teams[i].Players = append(teams[i].Players, p)
		}
	}
	return teams, nil
}

func (s *Store) LoadDirectory(ctx context.Context) (*fantasy.Directory, error) {
	teams, err := s.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}
	return fantasy.NewDirectoryFromTeams(teams), nil
}

// LoadGameLines returns a directory holding only the players with a line
// in the game, each carrying that game's line as their stats.
func (s *Store) LoadGameLines(ctx context.Context, gameID string) (*fantasy.Directory, error) {
	var one int
	if err := s.pool.QueryRow(ctx, "game_exists", gameID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
		}
		return nil, fmt.Errorf("check game: %w", err)
	}
	players, err := s.queryPlayers(ctx, "load_game_lines", gameID)
	if err != nil {
		return nil, err
	}
	return fantasy.NewDirectory(players), nil
}

// LoadEntries returns real entries for div in creation order. Entries with
// no picks in the division are absent.
func (s *Store) LoadEntries(ctx context.Context, div fantasy.Division) ([]fantasy.RosterSpec, error) {
	rows, err := s.pool.Query(ctx, "load_entries", string(div))
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	var specs []fantasy.RosterSpec
	lastID := ""
	for rows.Next() {
		var id, username, displayName, playerID string
		if err := rows.Scan(&id, &username, &displayName, &playerID); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if id != lastID {
			specs = append(specs, fantasy.RosterSpec{
				EntryID:     username,
				DisplayName: displayName,
				Division:    div,
			})
			lastID = id
		}
		last := &specs[len(specs)-1]
		last.PlayerIDs = append(last.PlayerIDs, playerID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return specs, nil
}

func (s *Store) queryPlayers(ctx context.Context, stmt string, args ...any) ([]fantasy.Player, error) {
	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stmt, err)
	}
	defer rows.Close()

	var players []fantasy.Player
	for rows.Next() {
		var p fantasy.Player
		var div string
		var raw []byte
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &div, &raw); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.Division = fantasy.Division(div)
		if p.Stats, err = decodeLine(raw); err != nil {
			return nil, fmt.Errorf("player %s: %w", p.ID, err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", stmt, err)
	}
	return players, nil
}

// decodeLine reads a jsonb stat object. Unknown keys are ignored so a
// column left over from an older scoring table does not break reads.
func decodeLine(raw []byte) (fantasy.StatLine, error) {
	if len(raw) == 0 {
		return fantasy.StatLine{}, nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	line, _, err := provider.ParseStatLine(obj)
	return line, err
}
