package fantasy

// ComputePoints reduces a stat line against a scoring table. Every counter
// in the table contributes value*weight, with missing values read as zero;
// counters the table does not know are ignored. Counters are visited in
// sorted order so the floating-point sum is identical on every call.
func ComputePoints(line StatLine, table ScoringTable) float64 {
	total := 0.0
	for _, c := range table.Counters() {
		total += float64(line.Get(c)) * table[c]
	}
	return total
}

// PointsFunc scores a single player.
type PointsFunc func(p Player) float64

// ScoreWith returns a PointsFunc that scores a player's stat line against
// table.
func ScoreWith(table ScoringTable) PointsFunc {
	return func(p Player) float64 {
		return ComputePoints(p.Stats, table)
	}
}

// PlayerPoints pairs a resolved player with their computed points.
type PlayerPoints struct {
	Player Player  `json:"player"`
	Points float64 `json:"points"`
}

// TotalPoints sums the points of every player in ids. IDs missing from the
// directory contribute zero.
func TotalPoints(ids []string, dir *Directory, table ScoringTable) float64 {
	return sumPoints(ids, dir, ScoreWith(table))
}

// RosterWithPoints resolves ids against the directory and scores each one,
// in input order. Unknown IDs are omitted from the result (they also
// contribute nothing to TotalPoints).
func RosterWithPoints(ids []string, dir *Directory, table ScoringTable) []PlayerPoints {
	return detailPoints(ids, dir, ScoreWith(table))
}

func sumPoints(ids []string, dir *Directory, points PointsFunc) float64 {
	total := 0.0
	for _, pp := range detailPoints(ids, dir, points) {
		total += pp.Points
	}
	return total
}

func detailPoints(ids []string, dir *Directory, points PointsFunc) []PlayerPoints {
	out := make([]PlayerPoints, 0, len(ids))
	for _, id := range ids {
		p, ok := dir.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, PlayerPoints{Player: p, Points: points(p)})
	}
	return out
}
