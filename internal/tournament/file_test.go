package tournament

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

const export = `{
  "teams": [
    {"id": "t1", "name": "Comets", "division": "boys", "players": [
      {"id": "b1", "name": "Ari", "stats": {"touchdowns": 1}},
      {"id": "b2", "name": "Ben", "stats": {"catches": 4}}
    ]},
    {"id": "t2", "name": "Lynx", "division": "girls", "players": [
      {"id": "g1", "name": "Cam", "stats": {"flagGrabs": 2}}
    ]}
  ],
  "games": [
    {"id": "game-1", "stats": {"b1": {"touchdowns": 2, "catches": 1}}}
  ],
  "entries": [
    {"username": "pat", "displayName": "Pat", "rosters": {"boys": ["b1", "b2"]}},
    {"username": "quinn", "rosters": {"girls": ["g1"]}}
  ]
}`

func openExport(t *testing.T) *FileSource {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tournament.json")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o644))
	src, err := OpenFile(path, fantasy.DefaultRosterLimits())
	require.NoError(t, err)
	return src
}

func TestFileSource_Implements(t *testing.T) {
	var _ Source = (*FileSource)(nil)
	var _ Source = (*Store)(nil)
}

func TestFileSource_Teams(t *testing.T) {
	src := openExport(t)
	ctx := context.Background()

	teams, err := src.LoadTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Len(t, teams[0].Players, 2)

	// b1's recorded totals are replaced by its game lines.
	assert.Equal(t, fantasy.StatLine{fantasy.Touchdown: 2, fantasy.Catch: 1}, teams[0].Players[0].Stats)
	assert.Equal(t, fantasy.StatLine{fantasy.Catch: 4}, teams[0].Players[1].Stats)

	dir, err := src.LoadDirectory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dir.Len())
	assert.Len(t, dir.ByDivision(fantasy.DivisionGirls), 1)
}

func TestFileSource_GameLines(t *testing.T) {
	src := openExport(t)
	ctx := context.Background()

	dir, err := src.LoadGameLines(ctx, "game-1")
	require.NoError(t, err)
	p, ok := dir.Lookup("b1")
	require.True(t, ok)
	assert.Equal(t, 2, p.Stats.Get(fantasy.Touchdown))

	_, ok = dir.Lookup("b2")
	assert.False(t, ok)

	_, err = src.LoadGameLines(ctx, "game-404")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestFileSource_Entries(t *testing.T) {
	src := openExport(t)

	boys, err := src.LoadEntries(context.Background(), fantasy.DivisionBoys)
	require.NoError(t, err)
	require.Len(t, boys, 1)
	assert.Equal(t, "pat", boys[0].EntryID)
	assert.Equal(t, []string{"b1", "b2"}, boys[0].PlayerIDs)

	girls, err := src.LoadEntries(context.Background(), fantasy.DivisionGirls)
	require.NoError(t, err)
	require.Len(t, girls, 1)
	assert.Equal(t, "quinn", girls[0].DisplayName)
}

func TestOpenFile_Errors(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.json"), fantasy.DefaultRosterLimits())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"teams": [{"id": "t", "division": "coed"}]}`), 0o644))
	_, err = OpenFile(path, fantasy.DefaultRosterLimits())
	assert.Error(t, err)
}

func TestDecodeLine(t *testing.T) {
	line, err := decodeLine([]byte(`{"touchdown": 2, "catch": 1, "legacyYards": 40}`))
	require.NoError(t, err)
	assert.Equal(t, fantasy.StatLine{fantasy.Touchdown: 2, fantasy.Catch: 1}, line)

	line, err = decodeLine(nil)
	require.NoError(t, err)
	assert.Empty(t, line)

	_, err = decodeLine([]byte(`{`))
	assert.Error(t, err)
}

func TestBuildLeaderboard_FromFile(t *testing.T) {
	src := openExport(t)
	table := fantasy.DefaultScoringTable()

	opts := fantasy.LeaderboardOptions{
		Division: fantasy.DivisionBoys,
		Generate: fantasy.GenerateOptions{Seed: "cup:boys", Count: 3, MinSize: 1, MaxSize: 2},
		MinReal:  5,
	}
	lb, err := BuildLeaderboard(context.Background(), src, table, opts)
	require.NoError(t, err)
	require.Len(t, lb.Entries, 4)
	assert.Equal(t, "cup:boys", lb.Seed)

	entry, rank, ok := fantasy.FindEntry(lb.Entries, "pat")
	require.True(t, ok)
	assert.Positive(t, rank)
	// b1: 2 TD + 1 catch, b2: 4 catches.
	assert.Equal(t, 2*table[fantasy.Touchdown]+5*table[fantasy.Catch], entry.TotalPoints)

	again, err := BuildLeaderboard(context.Background(), src, table, opts)
	require.NoError(t, err)
	assert.Equal(t, lb.Entries, again.Entries)
}
