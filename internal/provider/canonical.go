// Package provider defines the canonical tournament shape that every data
// source normalizes into. These structs are the contract between source
// parsers and the seed runner: parsers output them, seeders write them to
// Postgres, and the offline file source feeds them straight to the engine.
package provider

import (
	"time"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

// Tournament is a fully validated tournament snapshot.
type Tournament struct {
	Teams   []fantasy.Team
	Games   []Game
	Entries []Entry
}

// Game is one scheduled game with the per-player lines recorded for it.
type Game struct {
	ID         string
	Day        int
	HomeTeamID string
	AwayTeamID string
	StartTime  *time.Time
	Lines      []GameLine
}

// GameLine is one player's stat line for one game.
type GameLine struct {
	PlayerID string
	Stats    fantasy.StatLine
}

// Entry is a real user's fantasy entry, one roster per division.
type Entry struct {
	ID          string // optional stable identifier from the source
	Username    string
	DisplayName string
	Rosters     map[fantasy.Division][]string
}

// Directory returns the season directory. A player's season line is the
// sum of their game lines when any exist, otherwise the season totals the
// source recorded for them.
func (t *Tournament) Directory() *fantasy.Directory {
	gameLines := make(map[string][]fantasy.StatLine)
	for _, g := range t.Games {
		for _, l := range g.Lines {
			gameLines[l.PlayerID] = append(gameLines[l.PlayerID], l.Stats)
		}
	}

	var players []fantasy.Player
	for _, team := range t.Teams {
		for _, p := range team.Players {
			if lines, ok := gameLines[p.ID]; ok {
				p.Stats = fantasy.SumLines(lines...)
			}
			players = append(players, p)
		}
	}
	return fantasy.NewDirectory(players)
}

// GameDirectory returns a directory scoped to one game's lines, in team
// order. The boolean is false when the game does not exist.
func (t *Tournament) GameDirectory(gameID string) (*fantasy.Directory, bool) {
	var game *Game
	for i := range t.Games {
		if t.Games[i].ID == gameID {
			game = &t.Games[i]
			break
		}
	}
	if game == nil {
		return nil, false
	}

	lines := make(map[string]fantasy.StatLine, len(game.Lines))
	for _, l := range game.Lines {
		lines[l.PlayerID] = l.Stats
	}

	var players []fantasy.Player
	for _, team := range t.Teams {
		for _, p := range team.Players {
			if line, ok := lines[p.ID]; ok {
				p.Stats = line
				players = append(players, p)
			}
		}
	}
	return fantasy.NewDirectory(players), true
}

// RosterSpecs returns every entry's roster for div, in entry order. The
// username doubles as the leaderboard entry ID.
func (t *Tournament) RosterSpecs(div fantasy.Division) []fantasy.RosterSpec {
	var specs []fantasy.RosterSpec
	for _, e := range t.Entries {
		ids, ok := e.Rosters[div]
		if !ok {
			continue
		}
		specs = append(specs, fantasy.RosterSpec{
			EntryID:     e.Username,
			DisplayName: e.DisplayName,
			Division:    div,
			PlayerIDs:   append([]string{}, ids...),
		})
	}
	return specs
}
