package fantasy

import (
	"cmp"
	"slices"
)

// Rank orders entries by total points, highest first. Equal totals keep
// their input order: each entry is decorated with its original index,
// which serves as the secondary key. The input slice is not modified.
func Rank(entries []Entry) []Entry {
	type indexed struct {
		entry Entry
		pos   int
	}

	decorated := make([]indexed, len(entries))
	for i, e := range entries {
		decorated[i] = indexed{entry: e, pos: i}
	}

	slices.SortFunc(decorated, func(a, b indexed) int {
		if c := cmp.Compare(b.entry.TotalPoints, a.entry.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})

	ranked := make([]Entry, len(decorated))
	for i, d := range decorated {
		ranked[i] = d.entry
	}
	return ranked
}

// FindEntry locates an entry by ID in a ranked slice and returns it with
// its 1-based rank.
func FindEntry(ranked []Entry, entryID string) (Entry, int, bool) {
	i := slices.IndexFunc(ranked, func(e Entry) bool { return e.EntryID == entryID })
	if i < 0 {
		return Entry{}, 0, false
	}
	return ranked[i], i + 1, true
}
