package timekit

import "strings"

// Group is one bucket of a stable grouping: the key plus the records that
// mapped to it, in their input order.
type Group[T any] struct {
	Key     string
	Records []T
}

// GroupBy buckets records by key, preserving input order both across groups
// (first appearance wins) and within each group. Sort records before grouping
// when in-group order must be chronological.
func GroupBy[T any](records []T, key func(T) string) []Group[T] {
	index := make(map[string]int, len(records))
	var groups []Group[T]
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// CityOf splits a free-text place name at its first comma and returns the
// city part twice: once case-folded and trimmed for use as a grouping key,
// and once with its original casing for display. Cosmetic differences like
// "oslo, norway" vs "Oslo, Norway" therefore land in one group, keyed by the
// first-seen display form.
func CityOf(place string) (key, display string) {
	city := place
	if i := strings.Index(place, ","); i >= 0 {
		city = place[:i]
	}
	display = strings.TrimSpace(city)
	key = strings.ToLower(display)
	return key, display
}
