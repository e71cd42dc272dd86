package fantasy

// LeaderboardOptions configures BuildLeaderboard.
type LeaderboardOptions struct {
	Division Division
	Generate GenerateOptions
	// MinReal is the number of real entries at which synthetic filler
	// stops being generated. Zero disables synthetic entries.
	MinReal int
}

// BuildLeaderboard scores the division's real entries and, while fewer
// than MinReal of them exist, adds synthetic entries drawn from the
// division's pool in directory order. Real entries precede synthetic ones
// before ranking, so equal totals favour real entrants. An IncludeReal
// entrant whose username already has a real entry is dropped, so every
// EntryID on the board is unique.
func BuildLeaderboard(dir *Directory, table ScoringTable, realEntries []RosterSpec, opts LeaderboardOptions) []Entry {
	var entries []Entry
	seen := make(map[string]bool)
	for _, spec := range realEntries {
		if spec.Division != opts.Division || seen[spec.EntryID] {
			continue
		}
		seen[spec.EntryID] = true
		entries = append(entries, Entry{
			EntryID:     spec.EntryID,
			DisplayName: spec.DisplayName,
			TotalPoints: TotalPoints(spec.PlayerIDs, dir, table),
			Roster:      append([]string{}, spec.PlayerIDs...),
		})
	}

	if len(entries) < opts.MinReal {
		gen := opts.Generate
		if gen.IncludeReal != nil && seen[gen.IncludeReal.Username] {
			gen.IncludeReal = nil
		}
		synthetic := Generate(dir.ByDivision(opts.Division), ScoreWith(table), gen)
		entries = append(entries, synthetic...)
	}

	return Rank(entries)
}
