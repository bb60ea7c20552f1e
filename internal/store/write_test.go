package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/testutil"
)

func TestPut_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testutil.Githeri()
	r.StructuredIngredients = []recipe.Ingredient{{ID: "i1", Quantity: "2", Unit: "cups", Name: "maize"}}
	r.InstructionSteps = []string{"Boil.", "Fry.", "Combine."}
	r.Source = "Grandma"
	r.Notes = "Better the next day."

	require.NoError(t, s.Put(ctx, r))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	got, ok := findByID(all, r.ID)
	require.True(t, ok)
	assertRecipesEqual(t, []recipe.Recipe{r}, []recipe.Recipe{got})
}

func TestPut_OptionalFieldsStayAbsent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testutil.Pilau()
	r.DateAdded = nil
	r.Rating = nil
	r.TotalRatings = 0
	r.Tags = nil
	r.Difficulty = ""

	require.NoError(t, s.Put(ctx, r))
	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)

	assert.Nil(t, got.DateAdded)
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.Tags)
	assert.Equal(t, recipe.Difficulty(""), got.Difficulty)
	assert.Equal(t, 0.0, got.RatingValue())
}

func TestPut_ReplacesWholeRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testutil.Githeri()))

	replacement := recipe.Recipe{ID: "1", Name: "Githeri v2", Ingredients: []string{"Maize"}}
	require.NoError(t, s.Put(ctx, replacement))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assertRecipesEqual(t, []recipe.Recipe{replacement}, all)

	// The old tags are gone from the index too.
	byTag, err := s.Find(ctx, Lookup{Tag: "Vegetarian"})
	require.NoError(t, err)
	assert.Empty(t, byTag)
}

func TestPut_MissingID(t *testing.T) {
	s := createTestStore(t)
	err := s.Put(context.Background(), recipe.Recipe{Name: "Nameless"})
	assert.ErrorIs(t, err, ErrMissingID)
	assert.False(t, IsStorageError(err), "validation is not a storage failure")
}

func TestPut_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Put(ctx, testutil.Githeri())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, IsStorageError(err))
}

func TestDelete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testutil.Githeri()))
	require.NoError(t, s.Put(ctx, testutil.Pilau()))

	require.NoError(t, s.Delete(ctx, "1"))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	_, found := findByID(all, "1")
	assert.False(t, found)
	assert.Len(t, all, 1)

	// Tag rows cascade with the recipe.
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM recipe_tags WHERE recipe_id = '1'`).Scan(&n))
	assert.Zero(t, n)
}

func TestDelete_MissingIsNoOp(t *testing.T) {
	s := createTestStore(t)
	assert.NoError(t, s.Delete(context.Background(), "does-not-exist"))
}

func TestUpdateFavorite(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, testutil.Githeri()))

	found, err := s.UpdateFavorite(ctx, "1", true)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)

	// Only the flag changed.
	want := testutil.Githeri()
	want.IsFavorite = true
	assertRecipesEqual(t, []recipe.Recipe{want}, []recipe.Recipe{got})
}

func TestUpdateFavorite_MissingIsNoOp(t *testing.T) {
	s := createTestStore(t)
	found, err := s.UpdateFavorite(context.Background(), "ghost", true)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateFavorite_LastWriteWins(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, testutil.Pilau()))

	for _, v := range []bool{false, true, false} {
		_, err := s.UpdateFavorite(ctx, "2", v)
		require.NoError(t, err)
	}
	got, err := s.Get(ctx, "2")
	require.NoError(t, err)
	assert.False(t, got.IsFavorite)
}

func TestUpdateRating(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, testutil.Pilau()))

	found, err := s.UpdateRating(ctx, "2", 4.5, 9)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := s.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.RatingValue())
	assert.Equal(t, 9, got.TotalRatings)
	assert.Equal(t, "Pilau", got.Name)

	found, err = s.UpdateRating(ctx, "ghost", 1, 1)
	require.NoError(t, err)
	assert.False(t, found)
}
