package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/recipebox/internal/recipe"
)

// Run filters recipes by spec and returns them sorted. The input slice is
// not modified; the result is a new, non-nil slice.
func Run(recipes []recipe.Recipe, spec Spec) []recipe.Recipe {
	m := newMatcher(spec)

	out := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if m.matches(r) {
			out = append(out, r)
		}
	}

	compare := comparator(spec)
	slices.SortStableFunc(out, compare)
	return out
}

// Matches reports whether r passes all of spec's filters.
func Matches(r recipe.Recipe, spec Spec) bool {
	return newMatcher(spec).matches(r)
}

// matcher holds per-run state. cases.Caser is not safe for concurrent use,
// so every Run builds its own.
type matcher struct {
	fold     cases.Caser
	term     string
	favorite bool
	tags     []string
}

func newMatcher(spec Spec) *matcher {
	m := &matcher{
		fold:     cases.Fold(),
		favorite: spec.FavoritesOnly,
		tags:     spec.RequiredTags,
	}
	m.term = m.normalize(spec.Term)
	return m
}

func (m *matcher) normalize(s string) string {
	return m.fold.String(norm.NFC.String(s))
}

func (m *matcher) matches(r recipe.Recipe) bool {
	return m.matchesTerm(r) && m.matchesFavorite(r) && m.matchesTags(r)
}

func (m *matcher) matchesTerm(r recipe.Recipe) bool {
	if m.term == "" {
		return true
	}
	if strings.Contains(m.normalize(r.Name), m.term) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(m.normalize(ing), m.term) {
			return true
		}
	}
	return strings.Contains(m.normalize(r.Description), m.term)
}

func (m *matcher) matchesFavorite(r recipe.Recipe) bool {
	return !m.favorite || r.IsFavorite
}

// matchesTags requires every tag (AND semantics).
func (m *matcher) matchesTags(r recipe.Recipe) bool {
	for _, tag := range m.tags {
		if !r.HasTag(tag) {
			return false
		}
	}
	return true
}

// comparator builds the three-way comparison for spec. Descending negates
// the natural ascending result, which keeps the stable sort stable.
func comparator(spec Spec) func(a, b recipe.Recipe) int {
	var natural func(a, b recipe.Recipe) int
	switch spec.sortKey() {
	case SortByName:
		locale := spec.Locale
		if locale == language.Und {
			locale = language.English
		}
		col := collate.New(locale)
		natural = func(a, b recipe.Recipe) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortByRating:
		natural = func(a, b recipe.Recipe) int {
			return cmp.Compare(a.RatingValue(), b.RatingValue())
		}
	default:
		natural = func(a, b recipe.Recipe) int {
			return a.AddedAt().Compare(b.AddedAt())
		}
	}

	if spec.order() == Descending {
		return func(a, b recipe.Recipe) int { return -natural(a, b) }
	}
	return natural
}
