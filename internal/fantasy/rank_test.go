package fantasy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryIDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	return ids
}

func TestRank(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []string
	}{
		{
			name: "descending with stable ties",
			entries: []Entry{
				{EntryID: "a", TotalPoints: 26},
				{EntryID: "b", TotalPoints: 13},
				{EntryID: "c", TotalPoints: 13},
				{EntryID: "d", TotalPoints: 40},
			},
			want: []string{"d", "a", "b", "c"},
		},
		{
			name: "all equal keeps input order",
			entries: []Entry{
				{EntryID: "x", TotalPoints: 5},
				{EntryID: "y", TotalPoints: 5},
				{EntryID: "z", TotalPoints: 5},
			},
			want: []string{"x", "y", "z"},
		},
		{
			name: "negative totals rank last",
			entries: []Entry{
				{EntryID: "neg", TotalPoints: -4},
				{EntryID: "zero", TotalPoints: 0},
				{EntryID: "pos", TotalPoints: 1.5},
			},
			want: []string{"pos", "zero", "neg"},
		},
		{
			name:    "empty",
			entries: nil,
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entryIDs(Rank(tt.entries)))
		})
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []Entry{
		{EntryID: "a", TotalPoints: 1},
		{EntryID: "b", TotalPoints: 2},
	}

	out := Rank(in)

	assert.Equal(t, []string{"a", "b"}, entryIDs(in))
	assert.Equal(t, []string{"b", "a"}, entryIDs(out))
}

func TestRank_ManyTiesStayStable(t *testing.T) {
	var in []Entry
	for i := range 200 {
		in = append(in, Entry{EntryID: string(rune('A' + i%26)) + string(rune('0'+i/26)), TotalPoints: float64(i % 3)})
	}

	out := Rank(in)

	pos := make(map[string]int, len(in))
	for i, e := range in {
		pos[e.EntryID] = i
	}
	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1], out[i]
		require.GreaterOrEqual(t, prev.TotalPoints, cur.TotalPoints)
		if prev.TotalPoints == cur.TotalPoints {
			require.Less(t, pos[prev.EntryID], pos[cur.EntryID])
		}
	}
}

func TestFindEntry(t *testing.T) {
	ranked := Rank([]Entry{
		{EntryID: "a", TotalPoints: 1},
		{EntryID: "b", TotalPoints: 9},
	})

	e, rank, ok := FindEntry(ranked, "a")
	require.True(t, ok)
	assert.Equal(t, 2, rank)
	assert.Equal(t, "a", e.EntryID)

	_, _, ok = FindEntry(ranked, "missing")
	assert.False(t, ok)
}
