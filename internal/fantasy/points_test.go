package fantasy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTable() ScoringTable {
	return ScoringTable{Touchdown: 6, Catch: 1, PassingInterception: -2}
}

func examplePlayer(id string) Player {
	return Player{
		ID:       id,
		Name:     "Player " + id,
		Division: DivisionBoys,
		TeamID:   "t1",
		Stats:    StatLine{Touchdown: 2, Catch: 3, PassingInterception: 1},
	}
}

func TestComputePoints(t *testing.T) {
	tests := []struct {
		name  string
		line  StatLine
		table ScoringTable
		want  float64
	}{
		{
			name:  "worked example",
			line:  StatLine{Touchdown: 2, Catch: 3, PassingInterception: 1},
			table: exampleTable(),
			want:  13,
		},
		{
			name:  "missing counters read as zero",
			line:  StatLine{Catch: 4},
			table: exampleTable(),
			want:  4,
		},
		{
			name:  "counters outside the table are ignored",
			line:  StatLine{Catch: 1, Sack: 10},
			table: exampleTable(),
			want:  1,
		},
		{
			name:  "negative category",
			line:  StatLine{PassingInterception: 3},
			table: exampleTable(),
			want:  -6,
		},
		{
			name:  "fractional weight",
			line:  StatLine{MinimalReception: 3},
			table: DefaultScoringTable(),
			want:  1.5,
		},
		{
			name:  "nil line",
			line:  nil,
			table: DefaultScoringTable(),
			want:  0,
		},
		{
			name:  "empty table",
			line:  StatLine{Touchdown: 5},
			table: ScoringTable{},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePoints(tt.line, tt.table))
		})
	}
}

func TestComputePoints_Deterministic(t *testing.T) {
	line := StatLine{
		Touchdown: 3, PassingTD: 1, MinimalReception: 7, ShortReception: 2,
		MediumReception: 1, LongReception: 1, Catch: 11, FlagGrab: 9,
		Sack: 2, Interception: 1, PassingInterception: 2,
	}
	table := DefaultScoringTable()

	first := ComputePoints(line, table)
	for range 50 {
		require.Equal(t, first, ComputePoints(line, table))
	}
}

func TestComputePoints_ZeroLineScoresZero(t *testing.T) {
	zero := StatLine{}
	for _, c := range Counters {
		zero[c] = 0
	}
	tables := []ScoringTable{DefaultScoringTable(), exampleTable(), {Sack: -100}}
	for _, table := range tables {
		assert.Zero(t, ComputePoints(zero, table))
	}
}

func TestComputePoints_Linear(t *testing.T) {
	table := DefaultScoringTable()
	base := StatLine{Touchdown: 1, Catch: 4, FlagGrab: 2, PassingInterception: 1}
	original := ComputePoints(base, table)

	for _, c := range []Counter{Touchdown, Catch, FlagGrab, PassingInterception} {
		doubled := base.Add(StatLine{c: base[c]})
		want := original + float64(base[c])*table[c]
		assert.Equal(t, want, ComputePoints(doubled, table), "doubling %s", c)
	}
}

func TestTotalPoints(t *testing.T) {
	dir := NewDirectory([]Player{examplePlayer("a"), examplePlayer("b")})
	table := exampleTable()

	assert.Equal(t, 26.0, TotalPoints([]string{"a", "b"}, dir, table))
	assert.Equal(t, 0.0, TotalPoints(nil, dir, table))
	assert.Equal(t, 0.0, TotalPoints([]string{"a"}, nil, table))
}

func TestTotalPoints_UnknownIDContributesZero(t *testing.T) {
	dir := NewDirectory([]Player{examplePlayer("a")})
	table := exampleTable()

	withGhost := TotalPoints([]string{"a", "ghost"}, dir, table)
	alone := TotalPoints([]string{"a"}, dir, table)
	assert.Equal(t, alone, withGhost)
}

func TestRosterWithPoints(t *testing.T) {
	low := examplePlayer("low")
	low.Stats = StatLine{Catch: 1}
	dir := NewDirectory([]Player{examplePlayer("a"), low})

	got := RosterWithPoints([]string{"low", "ghost", "a"}, dir, exampleTable())

	// unknown IDs are omitted; input order is kept
	require.Len(t, got, 2)
	assert.Equal(t, "low", got[0].Player.ID)
	assert.Equal(t, 1.0, got[0].Points)
	assert.Equal(t, "a", got[1].Player.ID)
	assert.Equal(t, 13.0, got[1].Points)
}

func TestStatLineAdd(t *testing.T) {
	a := StatLine{Touchdown: 1, Catch: 2}
	b := StatLine{Catch: 3, Sack: 1}

	sum := a.Add(b)

	assert.Equal(t, StatLine{Touchdown: 1, Catch: 5, Sack: 1}, sum)
	assert.Equal(t, StatLine{Touchdown: 1, Catch: 2}, a, "receiver must not change")
	assert.Equal(t, StatLine{Touchdown: 1, Catch: 5, Sack: 1}, SumLines(a, b))
	assert.Equal(t, StatLine{}, SumLines())
}

func TestParseCounter(t *testing.T) {
	tests := []struct {
		in      string
		want    Counter
		wantErr bool
	}{
		{in: "touchdown", want: Touchdown},
		{in: "touchdowns", want: Touchdown},
		{in: "passingTD", want: PassingTD},
		{in: "passing_touchdowns", want: PassingTD},
		{in: "catches", want: Catch},
		{in: "flagsPulled", want: FlagGrab},
		{in: " Sacks ", want: Sack},
		{in: "interceptionsThrown", want: PassingInterception},
		{in: "passingInterceptions", want: PassingInterception},
		{in: "fumbles", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCounter(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCounter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDivision(t *testing.T) {
	d, err := ParseDivision(" Girls ")
	require.NoError(t, err)
	assert.Equal(t, DivisionGirls, d)

	d, err = ParseDivision("boys")
	require.NoError(t, err)
	assert.Equal(t, DivisionBoys, d)

	for _, bad := range []string{"", "boy", "g", "coed"} {
		_, err := ParseDivision(bad)
		assert.ErrorIs(t, err, ErrUnknownDivision, bad)
	}
}

func TestDefaultScoringTableCoversEveryCounter(t *testing.T) {
	table := DefaultScoringTable()
	for _, c := range Counters {
		_, ok := table[c]
		assert.True(t, ok, "missing weight for %s", c)
	}
	assert.Less(t, table[PassingInterception], 0.0)
}
