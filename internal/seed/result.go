// Package seed writes normalized tournament data to Postgres.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	TeamsUpserted     int
	PlayersUpserted   int
	GamesUpserted     int
	GameLinesUpserted int
	EntriesUpserted   int
	PicksWritten      int
	Errors            []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.TeamsUpserted += other.TeamsUpserted
	r.PlayersUpserted += other.PlayersUpserted
	r.GamesUpserted += other.GamesUpserted
	r.GameLinesUpserted += other.GameLinesUpserted
	r.EntriesUpserted += other.EntriesUpserted
	r.PicksWritten += other.PicksWritten
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Failed reports whether any step recorded an error.
func (r *SeedResult) Failed() bool {
	return len(r.Errors) > 0
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"teams=%d players=%d games=%d game_lines=%d entries=%d picks=%d errors=%d",
		r.TeamsUpserted, r.PlayersUpserted,
		r.GamesUpserted, r.GameLinesUpserted,
		r.EntriesUpserted, r.PicksWritten,
		len(r.Errors),
	)
}
