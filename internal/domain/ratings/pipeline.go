package ratings

import (
	"sort"
	"strings"
	"time"
)

// Entry is one rating as displayed to a store owner: the value plus the
// author fields the free-text filter runs against.
type Entry struct {
	ID            string    `json:"id"`
	Value         int       `json:"value"`
	AuthorName    string    `json:"author_name"`
	AuthorEmail   string    `json:"author_email"`
	AuthorAddress string    `json:"author_address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SortKey string

const (
	SortLatest     SortKey = "latest"
	SortOldest     SortKey = "oldest"
	SortRatingAsc  SortKey = "rating-asc"
	SortRatingDesc SortKey = "rating-desc"
)

// ParseSortKey maps a client-supplied sort parameter to a key, defaulting to
// latest for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest, SortRatingAsc, SortRatingDesc:
		return SortKey(s)
	default:
		return SortLatest
	}
}

// Search keeps the entries whose author name, email, or address contains the
// query, case-insensitively. The address only participates when present. An
// empty query returns the input unchanged.
func Search(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.AuthorName), q) ||
			strings.Contains(strings.ToLower(e.AuthorEmail), q) ||
			(e.AuthorAddress != "" && strings.Contains(strings.ToLower(e.AuthorAddress), q)) {
			matched = append(matched, e)
		}
	}
	return matched
}

// SortBy returns a copy of the entries ordered by the given key. The sort is
// stable: ties keep their input order, there is no secondary key.
func SortBy(entries []Entry, key SortKey) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	var less func(a, b Entry) bool
	switch key {
	case SortOldest:
		less = func(a, b Entry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortRatingAsc:
		less = func(a, b Entry) bool { return a.Value < b.Value }
	case SortRatingDesc:
		less = func(a, b Entry) bool { return a.Value > b.Value }
	default: // SortLatest
		less = func(a, b Entry) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Values extracts the rating values, feeding Average.
func Values(entries []Entry) []int {
	values := make([]int, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	return values
}
