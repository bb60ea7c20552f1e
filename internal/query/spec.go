package query

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/roach88/recipebox/internal/recipe"
)

// SortKey selects the field recipes are ordered by.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByDate   SortKey = "date"
	SortByRating SortKey = "rating"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// Spec is an immutable query description. Build variants with the With*
// methods; they return modified copies and never touch the receiver.
type Spec struct {
	Term          string
	FavoritesOnly bool
	RequiredTags  []string
	SortBy        SortKey
	Order         SortOrder

	// Locale drives name collation. The zero tag collates as English.
	Locale language.Tag
}

// DefaultSpec lists everything, newest first.
func DefaultSpec() Spec {
	return Spec{SortBy: SortByDate, Order: Descending, Locale: language.English}
}

// WithTerm returns a copy searching for term.
func (s Spec) WithTerm(term string) Spec {
	s.RequiredTags = cloneTags(s.RequiredTags)
	s.Term = term
	return s
}

// WithFavoritesOnly returns a copy with the favorites filter set.
func (s Spec) WithFavoritesOnly(on bool) Spec {
	s.RequiredTags = cloneTags(s.RequiredTags)
	s.FavoritesOnly = on
	return s
}

// WithTags returns a copy requiring all of tags. Tags are normalized the
// way stored tags are; matching stays case-sensitive.
func (s Spec) WithTags(tags ...string) Spec {
	s.RequiredTags = recipe.NormalizeTags(tags)
	return s
}

// SortedBy returns a copy ordered by key in the given direction.
func (s Spec) SortedBy(key SortKey, order SortOrder) Spec {
	s.RequiredTags = cloneTags(s.RequiredTags)
	s.SortBy = key
	s.Order = order
	return s
}

// WithLocale returns a copy collating names for tag.
func (s Spec) WithLocale(tag language.Tag) Spec {
	s.RequiredTags = cloneTags(s.RequiredTags)
	s.Locale = tag
	return s
}

// String renders the spec for logs and traces.
func (s Spec) String() string {
	return fmt.Sprintf("term=%q favorites=%t tags=[%s] sort=%s/%s",
		s.Term, s.FavoritesOnly, strings.Join(s.RequiredTags, ","), s.sortKey(), s.order())
}

func (s Spec) sortKey() SortKey {
	if s.SortBy == "" {
		return SortByDate
	}
	return s.SortBy
}

func (s Spec) order() SortOrder {
	if s.Order == "" {
		return Ascending
	}
	return s.Order
}

// ParseSortKey accepts "name", "date" or "rating".
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByDate, SortByRating:
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key %q: must be one of name, date, rating", s)
}

// ParseSortOrder accepts "ascending"/"asc" or "descending"/"desc".
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("invalid sort order %q: must be ascending or descending", s)
}

// ParseLocale parses a BCP 47 tag; empty means English.
func ParseLocale(s string) (language.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	return tag, nil
}

func cloneTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return append([]string(nil), tags...)
}
