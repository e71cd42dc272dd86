package fantasy

import (
	"errors"
	"fmt"
	"slices"
)

// Player is an immutable snapshot of one tournament player.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Division Division `json:"division"`
	TeamID   string   `json:"teamId"`
	Stats    StatLine `json:"stats"`
}

// Record is a team's win/loss record. Opaque to scoring.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Team owns an ordered list of players.
type Team struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Division Division `json:"division"`
	Captain  string   `json:"captain,omitempty"`
	Record   Record   `json:"record"`
	Players  []Player `json:"players"`
}

// --------------------------------------------------------------------------
// Directory
// --------------------------------------------------------------------------

// Directory is an ordered player collection indexed by ID. The order is
// part of the generator's effective input, so it is preserved exactly as
// given.
type Directory struct {
	players []Player
	index   map[string]int
}

// NewDirectory indexes players in the given order. A repeated ID keeps its
// first occurrence.
func NewDirectory(players []Player) *Directory {
	d := &Directory{
		players: make([]Player, 0, len(players)),
		index:   make(map[string]int, len(players)),
	}
	for _, p := range players {
		if _, dup := d.index[p.ID]; dup {
			continue
		}
		d.index[p.ID] = len(d.players)
		d.players = append(d.players, p)
	}
	return d
}

// NewDirectoryFromTeams flattens team rosters in team order.
func NewDirectoryFromTeams(teams []Team) *Directory {
	var players []Player
	for _, t := range teams {
		players = append(players, t.Players...)
	}
	return NewDirectory(players)
}

// Lookup returns the player with the given ID.
func (d *Directory) Lookup(id string) (Player, bool) {
	if d == nil {
		return Player{}, false
	}
	i, ok := d.index[id]
	if !ok {
		return Player{}, false
	}
	return d.players[i], true
}

// Players returns a copy of every player in directory order.
func (d *Directory) Players() []Player {
	if d == nil {
		return nil
	}
	return slices.Clone(d.players)
}

// ByDivision returns the division's players in directory order.
func (d *Directory) ByDivision(div Division) []Player {
	if d == nil {
		return nil
	}
	var out []Player
	for _, p := range d.players {
		if p.Division == div {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of players.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.players)
}

// --------------------------------------------------------------------------
// Roster
// --------------------------------------------------------------------------

var ErrDivisionFull = errors.New("division roster is full")

// RosterLimits caps the number of picks per division.
type RosterLimits map[Division]int

// DefaultRosterLimits allows five picks in each division.
func DefaultRosterLimits() RosterLimits {
	return RosterLimits{DivisionBoys: 5, DivisionGirls: 5}
}

// Roster is one entrant's division-partitioned player selection.
type Roster struct {
	limits RosterLimits
	picks  map[Division][]string
}

// NewRoster returns an empty roster bounded by limits.
func NewRoster(limits RosterLimits) *Roster {
	return &Roster{
		limits: limits,
		picks:  make(map[Division][]string),
	}
}

// Toggle adds id to the division's picks, or removes it when already
// present. It reports whether the player is selected afterwards.
func (r *Roster) Toggle(div Division, id string) (bool, error) {
	if !div.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownDivision, div)
	}
	picks := r.picks[div]
	if i := slices.Index(picks, id); i >= 0 {
		r.picks[div] = slices.Delete(picks, i, i+1)
		return false, nil
	}
	if limit := r.limits[div]; len(picks) >= limit {
		return false, fmt.Errorf("%w: %s allows %d", ErrDivisionFull, div, limit)
	}
	r.picks[div] = append(picks, id)
	return true, nil
}

// Has reports whether id is picked in div.
func (r *Roster) Has(div Division, id string) bool {
	return slices.Contains(r.picks[div], id)
}

// IDs returns the division's picks in selection order.
func (r *Roster) IDs(div Division) []string {
	return slices.Clone(r.picks[div])
}

// Limit returns the cap for div.
func (r *Roster) Limit(div Division) int {
	return r.limits[div]
}

// RosterSpec is a real entrant's roster for one division.
type RosterSpec struct {
	EntryID     string   `json:"entryId"`
	DisplayName string   `json:"displayName"`
	Division    Division `json:"division"`
	PlayerIDs   []string `json:"playerIds"`
}
