// Package fantasy is the scoring and leaderboard engine.
//
// Everything here is a pure function over explicit inputs: stat lines are
// reduced against a scoring table, rosters are summed against a player
// directory, synthetic rosters are drawn from a seeded generator, and
// entries are ranked with a stable tie-break. Nothing in this package
// performs I/O or keeps state between calls.
package fantasy

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// --------------------------------------------------------------------------
// Division
// --------------------------------------------------------------------------

// Division is the closed two-value partition of teams and players.
type Division string

const (
	DivisionBoys  Division = "boys"
	DivisionGirls Division = "girls"
)

// Divisions lists every valid division in display order.
var Divisions = []Division{DivisionBoys, DivisionGirls}

var ErrUnknownDivision = errors.New("unknown division")

// ParseDivision validates a division name. Only the enumerated values are
// accepted; the comparison ignores case and surrounding whitespace.
func ParseDivision(s string) (Division, error) {
	switch Division(strings.ToLower(strings.TrimSpace(s))) {
	case DivisionBoys:
		return DivisionBoys, nil
	case DivisionGirls:
		return DivisionGirls, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDivision, s)
}

// Valid reports whether d is one of the enumerated divisions.
func (d Division) Valid() bool {
	return d == DivisionBoys || d == DivisionGirls
}

// --------------------------------------------------------------------------
// Counters
// --------------------------------------------------------------------------

// Counter names a countable in-game event. The set of recognized counters
// is fixed by the scoring table.
type Counter string

const (
	Touchdown           Counter = "touchdown"
	PassingTD           Counter = "passingTD"
	MinimalReception    Counter = "minimalReception"
	ShortReception      Counter = "shortReception"
	MediumReception     Counter = "mediumReception"
	LongReception       Counter = "longReception"
	Catch               Counter = "catch"
	FlagGrab            Counter = "flagGrab"
	Sack                Counter = "sack"
	Interception        Counter = "interception"
	PassingInterception Counter = "passingInterception"
)

// Counters lists every recognized counter in scoring-table order.
var Counters = []Counter{
	Touchdown, PassingTD,
	MinimalReception, ShortReception, MediumReception, LongReception,
	Catch, FlagGrab, Sack, Interception, PassingInterception,
}

var ErrUnknownCounter = errors.New("unknown counter")

// counterAliases maps the stat-field names used by data sources onto
// counters. Keys are lower-cased.
var counterAliases = map[string]Counter{
	"touchdown":            Touchdown,
	"touchdowns":           Touchdown,
	"td":                   Touchdown,
	"tds":                  Touchdown,
	"passingtd":            PassingTD,
	"passingtds":           PassingTD,
	"passingtouchdown":     PassingTD,
	"passingtouchdowns":    PassingTD,
	"minimalreception":     MinimalReception,
	"minimalreceptions":    MinimalReception,
	"shortreception":       ShortReception,
	"shortreceptions":      ShortReception,
	"mediumreception":      MediumReception,
	"mediumreceptions":     MediumReception,
	"longreception":        LongReception,
	"longreceptions":       LongReception,
	"catch":                Catch,
	"catches":              Catch,
	"flaggrab":             FlagGrab,
	"flaggrabs":            FlagGrab,
	"flagspulled":          FlagGrab,
	"flagpulls":            FlagGrab,
	"sack":                 Sack,
	"sacks":                Sack,
	"interception":         Interception,
	"interceptions":        Interception,
	"passinginterception":  PassingInterception,
	"passinginterceptions": PassingInterception,
	"interceptionsthrown":  PassingInterception,
}

// ParseCounter resolves a counter from its table key or a known stat-field
// alias ("touchdowns", "catches", "interceptionsThrown", ...).
func ParseCounter(name string) (Counter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if c, ok := counterAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCounter, name)
}

// --------------------------------------------------------------------------
// StatLine
// --------------------------------------------------------------------------

// StatLine holds per-player event counts for one scope (a game or a
// season). Absent counters read as zero.
type StatLine map[Counter]int

// Get returns the count for c, zero when absent.
func (s StatLine) Get(c Counter) int {
	return s[c]
}

// Add returns a new line holding the element-wise sum of s and other.
func (s StatLine) Add(other StatLine) StatLine {
	out := make(StatLine, len(s)+len(other))
	for c, n := range s {
		out[c] += n
	}
	for c, n := range other {
		out[c] += n
	}
	return out
}

// SumLines folds any number of lines into one. Used to derive season
// totals from game lines.
func SumLines(lines ...StatLine) StatLine {
	total := StatLine{}
	for _, l := range lines {
		total = total.Add(l)
	}
	return total
}

// --------------------------------------------------------------------------
// ScoringTable
// --------------------------------------------------------------------------

// ScoringTable maps each recognized counter to its signed point weight.
type ScoringTable map[Counter]float64

// DefaultScoringTable is the tournament's standard weighting.
func DefaultScoringTable() ScoringTable {
	return ScoringTable{
		Touchdown:           6,
		PassingTD:           4,
		MinimalReception:    0.5,
		ShortReception:      1,
		MediumReception:     2,
		LongReception:       3,
		Catch:               1,
		FlagGrab:            1,
		Sack:                2,
		Interception:        3,
		PassingInterception: -2,
	}
}

// Counters returns the table's counters in sorted order.
func (t ScoringTable) Counters() []Counter {
	return slices.Sorted(maps.Keys(t))
}
