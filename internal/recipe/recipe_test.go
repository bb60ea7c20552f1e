package recipe_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/testutil"
)

func TestAddedAt_DefaultsToEpoch(t *testing.T) {
	r := testutil.Githeri()
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), r.AddedAt())

	r.DateAdded = nil
	assert.Equal(t, int64(0), r.AddedAt().Unix())
}

func TestRatingValue_Defaults(t *testing.T) {
	r := testutil.Pilau()
	assert.Equal(t, 5.0, r.RatingValue())

	r.Rating = nil
	assert.Equal(t, 0.0, r.RatingValue())

	r.Rating = testutil.Rating(3)
	r.TotalRatings = 0
	assert.Equal(t, 0.0, r.RatingValue(), "unrated recipes always read as 0")
}

func TestClone_IsDeep(t *testing.T) {
	r := testutil.Githeri()
	c := r.Clone()

	c.Tags[0] = "changed"
	c.Ingredients[0] = "changed"
	*c.DateAdded = time.Time{}
	*c.Rating = 1

	assert.Equal(t, "Main Dish", r.Tags[0])
	assert.Equal(t, "Maize", r.Ingredients[0])
	assert.Equal(t, 15, r.DateAdded.Day())
	assert.Equal(t, 4.5, *r.Rating)
}

func TestHasTagAndTotalTime(t *testing.T) {
	r := testutil.Githeri()
	assert.True(t, r.HasTag("Vegetarian"))
	assert.False(t, r.HasTag("vegetarian"), "tag match is case-sensitive")
	assert.Equal(t, 75, r.TotalTime())
}

func TestNormalizeTags(t *testing.T) {
	got := recipe.NormalizeTags([]string{" Soup", "Soup", "", "soup", "Café", "Café"})
	assert.Equal(t, []string{"Soup", "soup", "Café"}, got)

	assert.Nil(t, recipe.NormalizeTags([]string{" ", ""}))
}

func TestAddTag(t *testing.T) {
	tags, ok := recipe.AddTag(nil, " Quick ")
	require.True(t, ok)
	assert.Equal(t, []string{"Quick"}, tags)

	_, ok = recipe.AddTag(tags, "Quick")
	assert.False(t, ok, "duplicate")

	_, ok = recipe.AddTag(tags, "   ")
	assert.False(t, ok, "blank")

	full := make([]string, 0, recipe.MaxTags)
	for i := 0; i < recipe.MaxTags; i++ {
		full, ok = recipe.AddTag(full, string(rune('a'+i)))
		require.True(t, ok)
	}
	_, ok = recipe.AddTag(full, "overflow")
	assert.False(t, ok, "full")
}

func TestRemoveTag(t *testing.T) {
	assert.Equal(t, []string{"Rice", "Festive"}, recipe.RemoveTag([]string{"Rice", "Meat", "Festive"}, "Meat"))
	assert.Nil(t, recipe.RemoveTag([]string{"Meat"}, "Meat"))
}

func TestRate(t *testing.T) {
	r := testutil.Pilau() // 5.0 over 8 ratings

	rated, err := recipe.Rate(r, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 9, rated.TotalRatings)
	assert.Equal(t, 4.5, rated.RatingValue())
	assert.Equal(t, 5.0, r.RatingValue(), "original untouched")

	fresh := r
	fresh.Rating = nil
	fresh.TotalRatings = 0
	rated, err = recipe.Rate(fresh, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rated.RatingValue())
	assert.Equal(t, 1, rated.TotalRatings)
}

func TestRate_OutOfRange(t *testing.T) {
	for _, stars := range []float64{-1, 5.5, math.NaN(), math.Inf(1)} {
		_, err := recipe.Rate(testutil.Pilau(), stars)
		assert.ErrorIs(t, err, recipe.ErrInvalidRating)
	}
}
