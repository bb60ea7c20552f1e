package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/recipebox/internal/recipe"
)

// Lookup selects recipes through the secondary indexes. Zero-valued fields
// are ignored; set fields are combined with AND.
type Lookup struct {
	Favorite   *bool
	Cuisine    string
	Difficulty recipe.Difficulty
	Tag        string

	// AddedFrom and AddedTo bound date_added, inclusive. Recipes without a
	// date never match a date bound.
	AddedFrom *time.Time
	AddedTo   *time.Time

	// Limit caps the result size; zero means no limit.
	Limit int
}

// Find returns recipes matching l, newest first with id as tiebreaker.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) Find(ctx context.Context, l Lookup) ([]recipe.Recipe, error) {
	if err := s.checkOpen("find"); err != nil {
		return nil, err
	}
	query, params := l.compile()
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, wrapErr("find", err)
	}
	return collect(rows, "find")
}

// compile converts the lookup to parameterized SQL. All values are bound
// as parameters, never interpolated.
func (l Lookup) compile() (string, []any) {
	var (
		where  []string
		params []any
	)
	if l.Favorite != nil {
		where = append(where, "is_favorite = ?")
		params = append(params, *l.Favorite)
	}
	if l.Cuisine != "" {
		where = append(where, "cuisine = ?")
		params = append(params, l.Cuisine)
	}
	if l.Difficulty != "" {
		where = append(where, "difficulty = ?")
		params = append(params, string(l.Difficulty))
	}
	if l.Tag != "" {
		where = append(where, "EXISTS (SELECT 1 FROM recipe_tags t WHERE t.recipe_id = recipes.id AND t.tag = ?)")
		params = append(params, l.Tag)
	}
	if l.AddedFrom != nil {
		where = append(where, "date_added >= ?")
		params = append(params, l.AddedFrom.UnixMilli())
	}
	if l.AddedTo != nil {
		where = append(where, "date_added <= ?")
		params = append(params, l.AddedTo.UnixMilli())
	}

	var b strings.Builder
	b.WriteString("SELECT " + recipeColumns + " FROM recipes")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	// Stable order: NULL dates last, id breaks ties.
	b.WriteString(" ORDER BY date_added IS NULL, date_added DESC, id COLLATE BINARY ASC")
	if l.Limit > 0 {
		b.WriteString(fmt.Sprintf(" LIMIT %d", l.Limit))
	}
	return b.String(), params
}

// Bool returns a pointer to v, for Lookup.Favorite.
func Bool(v bool) *bool {
	return &v
}
