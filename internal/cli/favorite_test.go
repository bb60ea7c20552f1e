package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
)

func TestFavoriteCommand_TogglesTwice(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewFavoriteCommand, db, "text", "", "1")
	require.NoError(t, err)
	assert.Equal(t, "★ Githeri is now a favorite\n", out)
	r, _ := stored(t, db, "1")
	assert.True(t, r.IsFavorite)

	out, _, err = run(t, NewFavoriteCommand, db, "text", "", "1")
	require.NoError(t, err)
	assert.Equal(t, "Githeri is no longer a favorite\n", out)
	r, _ = stored(t, db, "1")
	assert.False(t, r.IsFavorite)
}

func TestFavoriteCommand_UnknownID(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewFavoriteCommand, db, "json", "", "99")
	require.NoError(t, err)

	var data map[string]any
	decodeData(t, out, &data)
	assert.Equal(t, false, data["found"])
}

func TestRateCommand(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewRateCommand, db, "text", "", "2", "0")
	require.NoError(t, err)
	// (5*8 + 0) / 9
	assert.Equal(t, "✓ Rated Pilau: now 4.4 (9)\n", out)

	r, _ := stored(t, db, "2")
	assert.InDelta(t, 40.0/9.0, r.RatingValue(), 1e-9)
	assert.Equal(t, 9, r.TotalRatings)
}

func TestRateCommand_InvalidStars(t *testing.T) {
	db := seedDB(t)

	for _, stars := range []string{"6", "NaN", "+Inf"} {
		_, _, err := run(t, NewRateCommand, db, "text", "", "2", stars)
		require.Error(t, err, stars)
		assert.Equal(t, ExitFailure, GetExitCode(err), stars)
		assert.True(t, errors.Is(err, recipe.ErrInvalidRating), stars)
	}

	_, _, err := run(t, NewRateCommand, db, "text", "", "2", "lots")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	r, _ := stored(t, db, "2")
	assert.Equal(t, 8, r.TotalRatings)
}

func TestRateCommand_UnknownID(t *testing.T) {
	out, _, err := run(t, NewRateCommand, seedDB(t), "text", "", "99", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing changed")
}

func TestDeleteCommand(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewDeleteCommand, db, "text", "", "2")
	require.NoError(t, err)
	assert.Equal(t, "✓ Deleted Pilau (2)\n", out)

	_, ok := stored(t, db, "2")
	assert.False(t, ok)
	assert.Equal(t, 2, storedCount(t, db))
	assert.Equal(t, []string{"Ugali Samaki"}, listNames(t, db, "--favorites"))
}

func TestDeleteCommand_UnknownID(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewDeleteCommand, db, "json", "", "99")
	require.NoError(t, err)

	var data map[string]any
	decodeData(t, out, &data)
	assert.Equal(t, "99", data["id"])
	assert.Equal(t, false, data["found"])
	assert.Equal(t, 3, storedCount(t, db))
}
