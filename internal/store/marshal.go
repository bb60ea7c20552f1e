package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/recipebox/internal/recipe"
)

// recipeColumns is the column order shared by inserts and scans.
const recipeColumns = `id, name, description, ingredients, structured_ingredients, instructions,
	instruction_steps, image, is_favorite, prep_time, cook_time, servings, difficulty,
	cuisine, tags, date_added, rating, total_ratings, source, notes`

// recipeArgs converts a recipe to positional arguments in recipeColumns order.
func recipeArgs(r recipe.Recipe) ([]any, error) {
	ingredients, err := marshalStrings(r.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("marshal ingredients: %w", err)
	}
	tags, err := marshalStrings(r.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	steps, err := marshalOptional(r.InstructionSteps)
	if err != nil {
		return nil, fmt.Errorf("marshal instruction steps: %w", err)
	}
	structured, err := marshalOptional(r.StructuredIngredients)
	if err != nil {
		return nil, fmt.Errorf("marshal structured ingredients: %w", err)
	}

	var dateAdded sql.NullInt64
	if r.DateAdded != nil {
		dateAdded = sql.NullInt64{Int64: r.DateAdded.UnixMilli(), Valid: true}
	}
	var rating sql.NullFloat64
	if r.Rating != nil {
		rating = sql.NullFloat64{Float64: *r.Rating, Valid: true}
	}

	return []any{
		r.ID,
		r.Name,
		r.Description,
		ingredients,
		structured,
		r.Instructions,
		steps,
		r.Image,
		r.IsFavorite,
		r.PrepTime,
		r.CookTime,
		r.Servings,
		string(r.Difficulty),
		r.Cuisine,
		tags,
		dateAdded,
		rating,
		r.TotalRatings,
		r.Source,
		r.Notes,
	}, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecipe reads one row selected with recipeColumns.
func scanRecipe(row rowScanner) (recipe.Recipe, error) {
	var (
		r           recipe.Recipe
		ingredients string
		structured  sql.NullString
		steps       sql.NullString
		difficulty  string
		tags        string
		dateAdded   sql.NullInt64
		rating      sql.NullFloat64
	)
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&ingredients,
		&structured,
		&r.Instructions,
		&steps,
		&r.Image,
		&r.IsFavorite,
		&r.PrepTime,
		&r.CookTime,
		&r.Servings,
		&difficulty,
		&r.Cuisine,
		&tags,
		&dateAdded,
		&rating,
		&r.TotalRatings,
		&r.Source,
		&r.Notes,
	)
	if err != nil {
		return recipe.Recipe{}, err
	}

	if r.Ingredients, err = unmarshalStrings(ingredients); err != nil {
		return recipe.Recipe{}, fmt.Errorf("recipe %s: unmarshal ingredients: %w", r.ID, err)
	}
	if r.Tags, err = unmarshalStrings(tags); err != nil {
		return recipe.Recipe{}, fmt.Errorf("recipe %s: unmarshal tags: %w", r.ID, err)
	}
	if steps.Valid {
		if r.InstructionSteps, err = unmarshalStrings(steps.String); err != nil {
			return recipe.Recipe{}, fmt.Errorf("recipe %s: unmarshal instruction steps: %w", r.ID, err)
		}
	}
	if structured.Valid && structured.String != "" {
		if err := json.Unmarshal([]byte(structured.String), &r.StructuredIngredients); err != nil {
			return recipe.Recipe{}, fmt.Errorf("recipe %s: unmarshal structured ingredients: %w", r.ID, err)
		}
		if len(r.StructuredIngredients) == 0 {
			r.StructuredIngredients = nil
		}
	}

	r.Difficulty = recipe.Difficulty(difficulty)
	if dateAdded.Valid {
		t := time.UnixMilli(dateAdded.Int64).UTC()
		r.DateAdded = &t
	}
	if rating.Valid {
		v := rating.Float64
		r.Rating = &v
	}
	return r, nil
}

// marshalStrings encodes a list as a JSON array; nil becomes "[]".
func marshalStrings(s []string) (string, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// marshalOptional encodes a list as JSON, or NULL when empty.
func marshalOptional[T any](s []T) (sql.NullString, error) {
	if len(s) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalStrings decodes a JSON array; empty arrays decode to nil.
func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var s []string
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, nil
	}
	return s, nil
}
