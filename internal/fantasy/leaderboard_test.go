package fantasy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeaderboard_RealOnly(t *testing.T) {
	dir := NewDirectory([]Player{examplePlayer("a"), examplePlayer("b")})
	realEntries := []RosterSpec{
		{EntryID: "u1", DisplayName: "One", Division: DivisionBoys, PlayerIDs: []string{"a"}},
		{EntryID: "u2", DisplayName: "Two", Division: DivisionBoys, PlayerIDs: []string{"a", "b"}},
		{EntryID: "u3", DisplayName: "Three", Division: DivisionGirls, PlayerIDs: []string{"a", "b"}},
	}

	got := BuildLeaderboard(dir, exampleTable(), realEntries, LeaderboardOptions{Division: DivisionBoys})

	require.Len(t, got, 2)
	assert.Equal(t, "u2", got[0].EntryID)
	assert.Equal(t, 26.0, got[0].TotalPoints)
	assert.Equal(t, "u1", got[1].EntryID)
	assert.Equal(t, 13.0, got[1].TotalPoints)
}

func TestBuildLeaderboard_FillsWithSynthetic(t *testing.T) {
	pool := numberedPool(10)
	pool = append(pool, Player{ID: "g1", Division: DivisionGirls, Stats: StatLine{Touchdown: 50}})
	dir := NewDirectory(pool)
	table := DefaultScoringTable()
	realEntries := []RosterSpec{{EntryID: "u1", Division: DivisionBoys, PlayerIDs: []string{"p1"}}}
	opts := LeaderboardOptions{
		Division: DivisionBoys,
		Generate: GenerateOptions{Seed: "fill", Count: 6},
		MinReal:  3,
	}

	got := BuildLeaderboard(dir, table, realEntries, opts)

	require.Len(t, got, 7)
	synthetic := 0
	for _, e := range got {
		if e.Synthetic {
			synthetic++
			assert.NotContains(t, e.Roster, "g1", "synthetic rosters draw from the division pool only")
		}
	}
	assert.Equal(t, 6, synthetic)

	again := BuildLeaderboard(dir, table, realEntries, opts)
	assert.Equal(t, got, again)
}

func TestBuildLeaderboard_EnoughRealEntriesSkipsSynthetic(t *testing.T) {
	dir := NewDirectory(numberedPool(10))
	realEntries := []RosterSpec{
		{EntryID: "u1", Division: DivisionBoys, PlayerIDs: []string{"p1"}},
		{EntryID: "u2", Division: DivisionBoys, PlayerIDs: []string{"p2"}},
	}

	got := BuildLeaderboard(dir, DefaultScoringTable(), realEntries, LeaderboardOptions{
		Division: DivisionBoys,
		Generate: GenerateOptions{Seed: "fill", Count: 6},
		MinReal:  2,
	})

	assert.Len(t, got, 2)
}

func TestBuildLeaderboard_TiesFavourRealEntries(t *testing.T) {
	// every player scores zero, so all totals tie
	dir := NewDirectory(numberedPool(6))
	realEntries := []RosterSpec{{EntryID: "u1", Division: DivisionBoys, PlayerIDs: []string{"p1"}}}

	got := BuildLeaderboard(dir, ScoringTable{}, realEntries, LeaderboardOptions{
		Division: DivisionBoys,
		Generate: GenerateOptions{Seed: "tie", Count: 3},
		MinReal:  5,
	})

	require.Len(t, got, 4)
	assert.Equal(t, "u1", got[0].EntryID)
}

func TestBuildLeaderboard_IncludedUserWithRealEntryKeepsRealRoster(t *testing.T) {
	dir := NewDirectory(numberedPool(10))
	realEntries := []RosterSpec{
		{EntryID: "alice", DisplayName: "Alice", Division: DivisionBoys, PlayerIDs: []string{"p1"}},
	}
	opts := LeaderboardOptions{
		Division: DivisionBoys,
		MinReal:  5,
		Generate: GenerateOptions{Seed: "dup", Count: 3, IncludeReal: &RealEntrant{Username: "alice"}},
	}

	got := BuildLeaderboard(dir, DefaultScoringTable(), realEntries, opts)

	require.Len(t, got, 4, "three synthetic entries plus alice once")
	ids := make(map[string]int)
	for _, e := range got {
		ids[e.EntryID]++
	}
	assert.Equal(t, 1, ids["alice"])

	entry, _, ok := FindEntry(got, "alice")
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, entry.Roster)
	assert.False(t, entry.Synthetic)
	assert.NotNil(t, opts.Generate.IncludeReal, "caller options are left untouched")
}

func TestBuildLeaderboard_IncludedUserWithoutRealEntry(t *testing.T) {
	dir := NewDirectory(numberedPool(10))
	opts := LeaderboardOptions{
		Division: DivisionBoys,
		MinReal:  5,
		Generate: GenerateOptions{Seed: "new", Count: 3, IncludeReal: &RealEntrant{Username: "bob"}},
	}

	got := BuildLeaderboard(dir, DefaultScoringTable(), nil, opts)

	require.Len(t, got, 4)
	_, _, ok := FindEntry(got, "bob")
	assert.True(t, ok)
}
