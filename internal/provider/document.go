package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

// --------------------------------------------------------------------------
// Raw document: the tournament export as it arrives
// --------------------------------------------------------------------------

type document struct {
	Teams   []teamRecord  `json:"teams"`
	Games   []gameRecord  `json:"games"`
	Entries []entryRecord `json:"entries"`
}

type teamRecord struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Division string         `json:"division"`
	Captain  string         `json:"captain"`
	Record   fantasy.Record `json:"record"`
	Players  []playerRecord `json:"players"`
}

type playerRecord struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Division string                 `json:"division"`
	Stats    map[string]interface{} `json:"stats"`
}

type gameRecord struct {
	ID         string                            `json:"id"`
	Day        int                               `json:"day"`
	HomeTeamID string                            `json:"homeTeamId"`
	AwayTeamID string                            `json:"awayTeamId"`
	StartTime  *time.Time                        `json:"startTime"`
	Stats      map[string]map[string]interface{} `json:"stats"`
}

type entryRecord struct {
	ID          string              `json:"id"`
	Username    string              `json:"username"`
	DisplayName string              `json:"displayName"`
	Rosters     map[string][]string `json:"rosters"`
}

var ErrInvalidDocument = errors.New("invalid tournament document")

// LoadTournamentFile opens and decodes a tournament export.
func LoadTournamentFile(path string, limits fantasy.RosterLimits) (*Tournament, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open tournament file: %w", err)
	}
	defer f.Close()
	return DecodeTournament(f, limits)
}

// DecodeTournament parses and validates a tournament export.
//
// Structural problems (missing IDs, an unknown division, a player on two
// teams, malformed counts) reject the whole document. Recoverable problems
// are returned as warnings: unknown stat names are skipped, and roster
// picks past the division cap or repeated within a division are dropped.
func DecodeTournament(r io.Reader, limits fantasy.RosterLimits) (*Tournament, []string, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode tournament: %w", err)
	}

	var warnings []string
	t := &Tournament{}
	owner := make(map[string]string) // player ID -> team ID

	for _, tr := range doc.Teams {
		team, warns, err := normalizeTeam(tr, owner)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		t.Teams = append(t.Teams, team)
	}

	seenGames := make(map[string]bool)
	for _, gr := range doc.Games {
		if gr.ID == "" {
			return nil, nil, fmt.Errorf("%w: game without id", ErrInvalidDocument)
		}
		if seenGames[gr.ID] {
			return nil, nil, fmt.Errorf("%w: game %s listed twice", ErrInvalidDocument, gr.ID)
		}
		seenGames[gr.ID] = true

		game, warns, err := normalizeGame(gr, owner)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, warns...)
		t.Games = append(t.Games, game)
	}

	seenUsers := make(map[string]bool)
	for _, er := range doc.Entries {
		entry, warns, err := normalizeEntry(er, limits)
		if err != nil {
			return nil, nil, err
		}
		if seenUsers[entry.Username] {
			return nil, nil, fmt.Errorf("%w: duplicate entry for username %s", ErrInvalidDocument, entry.Username)
		}
		seenUsers[entry.Username] = true
		warnings = append(warnings, warns...)
		t.Entries = append(t.Entries, entry)
	}

	return t, warnings, nil
}

func normalizeTeam(tr teamRecord, owner map[string]string) (fantasy.Team, []string, error) {
	if tr.ID == "" {
		return fantasy.Team{}, nil, fmt.Errorf("%w: team without id", ErrInvalidDocument)
	}
	div, err := fantasy.ParseDivision(tr.Division)
	if err != nil {
		return fantasy.Team{}, nil, fmt.Errorf("%w: team %s: %w", ErrInvalidDocument, tr.ID, err)
	}

	team := fantasy.Team{
		ID:       tr.ID,
		Name:     tr.Name,
		Division: div,
		Captain:  tr.Captain,
		Record:   tr.Record,
		Players:  make([]fantasy.Player, 0, len(tr.Players)),
	}

	var warnings []string
	for _, pr := range tr.Players {
		if pr.ID == "" {
			return fantasy.Team{}, nil, fmt.Errorf("%w: team %s has a player without id", ErrInvalidDocument, tr.ID)
		}
		if other, taken := owner[pr.ID]; taken {
			return fantasy.Team{}, nil, fmt.Errorf("%w: player %s is on teams %s and %s", ErrInvalidDocument, pr.ID, other, tr.ID)
		}
		if pr.Division != "" {
			pdiv, err := fantasy.ParseDivision(pr.Division)
			if err != nil || pdiv != div {
				return fantasy.Team{}, nil, fmt.Errorf("%w: player %s division %q does not match team %s", ErrInvalidDocument, pr.ID, pr.Division, tr.ID)
			}
		}
		owner[pr.ID] = tr.ID

		stats, unknown, err := ParseStatLine(pr.Stats)
		if err != nil {
			return fantasy.Team{}, nil, fmt.Errorf("%w: player %s: %w", ErrInvalidDocument, pr.ID, err)
		}
		for _, name := range unknown {
			warnings = append(warnings, fmt.Sprintf("player %s: ignored unknown stat %q", pr.ID, name))
		}

		team.Players = append(team.Players, fantasy.Player{
			ID:       pr.ID,
			Name:     pr.Name,
			Division: div,
			TeamID:   tr.ID,
			Stats:    stats,
		})
	}
	return team, warnings, nil
}

func normalizeGame(gr gameRecord, owner map[string]string) (Game, []string, error) {
	game := Game{
		ID:         gr.ID,
		Day:        gr.Day,
		HomeTeamID: gr.HomeTeamID,
		AwayTeamID: gr.AwayTeamID,
		StartTime:  gr.StartTime,
	}
	if game.Day == 0 {
		game.Day = 1
	}

	var warnings []string
	for _, playerID := range sortedKeys(gr.Stats) {
		if _, known := owner[playerID]; !known {
			warnings = append(warnings, fmt.Sprintf("game %s: stats for unknown player %s skipped", gr.ID, playerID))
			continue
		}
		stats, unknown, err := ParseStatLine(gr.Stats[playerID])
		if err != nil {
			return Game{}, nil, fmt.Errorf("%w: game %s player %s: %w", ErrInvalidDocument, gr.ID, playerID, err)
		}
		for _, name := range unknown {
			warnings = append(warnings, fmt.Sprintf("game %s player %s: ignored unknown stat %q", gr.ID, playerID, name))
		}
		game.Lines = append(game.Lines, GameLine{PlayerID: playerID, Stats: stats})
	}
	return game, warnings, nil
}

func normalizeEntry(er entryRecord, limits fantasy.RosterLimits) (Entry, []string, error) {
	if er.Username == "" {
		return Entry{}, nil, fmt.Errorf("%w: entry without username", ErrInvalidDocument)
	}
	entry := Entry{
		ID:          er.ID,
		Username:    er.Username,
		DisplayName: er.DisplayName,
		Rosters:     make(map[fantasy.Division][]string),
	}
	if entry.DisplayName == "" {
		entry.DisplayName = er.Username
	}

	var warnings []string
	roster := fantasy.NewRoster(limits)
	for _, name := range sortedKeys(er.Rosters) {
		div, err := fantasy.ParseDivision(name)
		if err != nil {
			return Entry{}, nil, fmt.Errorf("%w: entry %s: %w", ErrInvalidDocument, er.Username, err)
		}
		for _, id := range er.Rosters[name] {
			if roster.Has(div, id) {
				warnings = append(warnings, fmt.Sprintf("entry %s: duplicate pick %s in %s dropped", er.Username, id, div))
				continue
			}
			if _, err := roster.Toggle(div, id); err != nil {
				warnings = append(warnings, fmt.Sprintf("entry %s: pick %s dropped: %v", er.Username, id, err))
			}
		}
		entry.Rosters[div] = roster.IDs(div)
	}
	return entry, warnings, nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
