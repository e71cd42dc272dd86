package fantasy

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

const (
	defaultMinRosterSize = 5
	defaultMaxRosterSize = 7
)

// Entry is one leaderboard row. Rank is not stored: it is the 1-based
// position of the entry in a ranked slice.
type Entry struct {
	EntryID     string   `json:"entryId"`
	DisplayName string   `json:"displayName"`
	TotalPoints float64  `json:"totalPoints"`
	Roster      []string `json:"roster"`
	Synthetic   bool     `json:"synthetic"`
}

// RealEntrant is a signed-in user whose entry is drawn from the same
// stream as the synthetic ones.
type RealEntrant struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// GenerateOptions configures a synthetic generation run.
type GenerateOptions struct {
	Seed        string
	Count       int
	MinSize     int // defaults to 5 when both sizes are zero
	MaxSize     int // defaults to 7 when both sizes are zero
	IncludeReal *RealEntrant
}

func (o GenerateOptions) withDefaults() GenerateOptions {
	if o.MinSize <= 0 && o.MaxSize <= 0 {
		o.MinSize, o.MaxSize = defaultMinRosterSize, defaultMaxRosterSize
	}
	if o.MinSize < 0 {
		o.MinSize = 0
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = o.MinSize
	}
	if o.Count < 0 {
		o.Count = 0
	}
	return o
}

// Generate produces Count synthetic entries from pool, plus one entry for
// IncludeReal when set, ranked by total points. A repeated player ID in
// pool keeps its first occurrence, so no roster lists a player twice.
//
// The run is fully determined by Seed, Count, the size range and the
// content and order of pool. Draws are consumed in a fixed order: for each
// entry one draw picks the roster size, then one draw per swap shuffles a
// fresh copy of the pool from the last index down to 1. The real entrant,
// if any, continues the same stream after the synthetic entries.
func Generate(pool []Player, points PointsFunc, opts GenerateOptions) []Entry {
	opts = opts.withDefaults()
	if points == nil {
		points = func(Player) float64 { return 0 }
	}

	dir := NewDirectory(pool)
	players := dir.Players()
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}

	rng := NewMulberry32(HashSeed(opts.Seed))
	names := gofakeit.New(nameSeed(opts.Seed))

	entries := make([]Entry, 0, opts.Count+1)
	for i := range opts.Count {
		roster := drawRoster(rng, ids, opts.MinSize, opts.MaxSize)
		entries = append(entries, Entry{
			EntryID:     fmt.Sprintf("synthetic-%d", i+1),
			DisplayName: syntheticName(names),
			TotalPoints: sumPoints(roster, dir, points),
			Roster:      roster,
			Synthetic:   true,
		})
	}

	if entrant := opts.IncludeReal; entrant != nil {
		roster := drawRoster(rng, ids, opts.MinSize, opts.MaxSize)
		name := entrant.DisplayName
		if name == "" {
			name = entrant.Username
		}
		entries = append(entries, Entry{
			EntryID:     entrant.Username,
			DisplayName: name,
			TotalPoints: sumPoints(roster, dir, points),
			Roster:      roster,
		})
	}

	return Rank(entries)
}

// drawRoster consumes one size draw and len(ids)-1 shuffle draws.
func drawRoster(rng *Mulberry32, ids []string, minSize, maxSize int) []string {
	size := minSize + rng.Intn(maxSize-minSize+1)

	shuffled := make([]string, len(ids))
	copy(shuffled, ids)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	size = min(size, len(shuffled))
	return append([]string{}, shuffled[:size]...)
}

// nameSeed keeps the faker stream separate from the roster stream. The
// high bit keeps it non-zero, since gofakeit treats 0 as "seed randomly".
func nameSeed(seed string) uint64 {
	return uint64(HashSeed(seed)) | 1<<32
}

func syntheticName(f *gofakeit.Faker) string {
	last := f.LastName()
	if last == "" {
		return f.FirstName()
	}
	return fmt.Sprintf("%s %s.", f.FirstName(), last[:1])
}
