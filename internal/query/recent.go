package query

import "strings"

// MaxRecentSearches bounds the recent search list.
const MaxRecentSearches = 5

// RecentSearches is a most-recent-first list of distinct search terms.
// The zero value is ready to use. Not safe for concurrent use.
type RecentSearches struct {
	terms []string
}

// Add records term at the front, removing an earlier identical entry and
// dropping the oldest beyond MaxRecentSearches. Blank terms are ignored.
func (r *RecentSearches) Add(term string) {
	if strings.TrimSpace(term) == "" {
		return
	}
	next := make([]string, 0, MaxRecentSearches)
	next = append(next, term)
	for _, t := range r.terms {
		if t != term && len(next) < MaxRecentSearches {
			next = append(next, t)
		}
	}
	r.terms = next
}

// Remove deletes the entry at index i; out-of-range indexes are ignored.
func (r *RecentSearches) Remove(i int) {
	if i < 0 || i >= len(r.terms) {
		return
	}
	r.terms = append(r.terms[:i:i], r.terms[i+1:]...)
}

// List returns a copy of the terms, most recent first.
func (r *RecentSearches) List() []string {
	return append([]string{}, r.terms...)
}
