package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/recipebox/internal/recipe"
)

// GetAll returns every stored recipe. Rows come back ordered by id for
// deterministic output, but callers re-sort through the query engine and
// must not depend on it.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) GetAll(ctx context.Context) ([]recipe.Recipe, error) {
	if err := s.checkOpen("get all"); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, wrapErr("get all", err)
	}
	return collect(rows, "get all")
}

// Get returns one recipe, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (recipe.Recipe, error) {
	if err := s.checkOpen("get"); err != nil {
		return recipe.Recipe{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe.Recipe{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return recipe.Recipe{}, wrapErr("get", err)
	}
	return r, nil
}

// Count returns the number of stored recipes.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.checkOpen("count"); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&n); err != nil {
		return 0, wrapErr("count", err)
	}
	return n, nil
}

// collect scans and closes rows.
func collect(rows *sql.Rows, op string) ([]recipe.Recipe, error) {
	defer rows.Close()

	recipes := []recipe.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, fmt.Errorf("iterate recipes: %w", err))
	}
	return recipes, nil
}
