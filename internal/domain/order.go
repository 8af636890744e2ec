package domain

import "sort"

// SortEntries orders entries ascending by calendar date. Entries whose date
// does not parse sort after all valid dates, ordered by their raw string.
// The sort is stable.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return DateLess(entries[i].Date, entries[j].Date)
	})
}

// DateLess reports whether an entry dated a sorts before one dated b.
func DateLess(a, b string) bool {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}

// IsSorted reports whether entries are in SortEntries order.
func IsSorted(entries []Entry) bool {
	for i := 1; i < len(entries); i++ {
		if DateLess(entries[i].Date, entries[i-1].Date) {
			return false
		}
	}
	return true
}
