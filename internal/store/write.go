package store

import (
	"context"
	"fmt"

	"github.com/roach88/recipebox/internal/recipe"
)

// Put inserts r, or fully replaces the stored record with the same ID.
// Only the presence of an ID is validated. The row and its tag index are
// rewritten in one transaction.
func (s *Store) Put(ctx context.Context, r recipe.Recipe) error {
	if r.ID == "" {
		return fmt.Errorf("put: %w", ErrMissingID)
	}
	if err := s.checkOpen("put"); err != nil {
		return err
	}

	args, err := recipeArgs(r)
	if err != nil {
		return wrapErr("put", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("put", fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			ingredients = excluded.ingredients,
			structured_ingredients = excluded.structured_ingredients,
			instructions = excluded.instructions,
			instruction_steps = excluded.instruction_steps,
			image = excluded.image,
			is_favorite = excluded.is_favorite,
			prep_time = excluded.prep_time,
			cook_time = excluded.cook_time,
			servings = excluded.servings,
			difficulty = excluded.difficulty,
			cuisine = excluded.cuisine,
			tags = excluded.tags,
			date_added = excluded.date_added,
			rating = excluded.rating,
			total_ratings = excluded.total_ratings,
			source = excluded.source,
			notes = excluded.notes
	`, args...)
	if err != nil {
		return wrapErr("put", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, r.ID); err != nil {
		return wrapErr("put", fmt.Errorf("clear tags: %w", err))
	}
	for _, tag := range r.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			r.ID, tag,
		); err != nil {
			return wrapErr("put", fmt.Errorf("index tag %q: %w", tag, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("put", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Delete removes the recipe with id. Deleting a missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.checkOpen("delete"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id); err != nil {
		return wrapErr("delete", err)
	}
	return nil
}

// UpdateFavorite sets only the favorite flag of one recipe. It reports
// whether a recipe with id exists; a missing id is a no-op, not an error.
func (s *Store) UpdateFavorite(ctx context.Context, id string, isFavorite bool) (bool, error) {
	if err := s.checkOpen("update favorite"); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE recipes SET is_favorite = ? WHERE id = ?`, isFavorite, id)
	if err != nil {
		return false, wrapErr("update favorite", err)
	}
	return affected(res, "update favorite")
}

// UpdateRating sets only the rating average and count of one recipe. It
// reports whether a recipe with id exists.
func (s *Store) UpdateRating(ctx context.Context, id string, rating float64, totalRatings int) (bool, error) {
	if err := s.checkOpen("update rating"); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET rating = ?, total_ratings = ? WHERE id = ?`,
		rating, totalRatings, id,
	)
	if err != nil {
		return false, wrapErr("update rating", err)
	}
	return affected(res, "update rating")
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func affected(res rowsAffecter, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr(op, err)
	}
	return n > 0, nil
}
