package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
)

func listNames(t *testing.T, db string, args ...string) []string {
	t.Helper()
	out, _, err := run(t, NewListCommand, db, "json", "", args...)
	require.NoError(t, err)

	var recipes []recipe.Recipe
	decodeData(t, out, &recipes)
	return recipeNames(recipes)
}

func TestListCommand(t *testing.T) {
	db := seedDB(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default newest first", nil, []string{"Githeri", "Pilau", "Ugali Samaki"}},
		{"favorites", []string{"--favorites"}, []string{"Pilau", "Ugali Samaki"}},
		{"term in ingredients", []string{"--search", "rice"}, []string{"Pilau"}},
		{"term in description", []string{"-s", "TOMATO SAUCE"}, []string{"Ugali Samaki"}},
		{"term without match", []string{"--search", "sushi"}, []string{}},
		{"tag", []string{"--tag", "Fish"}, []string{"Ugali Samaki"}},
		{"tags are exact", []string{"--tag", "fish"}, []string{}},
		{"name ascending", []string{"--sort", "name", "--order", "asc"}, []string{"Githeri", "Pilau", "Ugali Samaki"}},
		{"rating descending", []string{"--sort", "rating", "--order", "desc"}, []string{"Pilau", "Ugali Samaki", "Githeri"}},
		{"date ascending", []string{"--order", "ascending"}, []string{"Ugali Samaki", "Pilau", "Githeri"}},
		{"cuisine index", []string{"--cuisine", "Kenyan"}, []string{"Githeri", "Ugali Samaki"}},
		{"difficulty index", []string{"--difficulty", "medium"}, []string{"Pilau"}},
		{"inclusive date range", []string{"--since", "2024-01-06", "--until", "2024-01-10"}, []string{"Pilau"}},
		{"index with term", []string{"--cuisine", "Kenyan", "--search", "fish"}, []string{"Ugali Samaki"}},
		{"limit", []string{"--limit", "1"}, []string{"Githeri"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listNames(t, db, tt.args...))
		})
	}
}

func TestListCommand_Text(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewListCommand, db, "text", "")
	require.NoError(t, err)

	githeri := strings.Index(out, "Githeri")
	pilau := strings.Index(out, "Pilau")
	ugali := strings.Index(out, "Ugali Samaki")
	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.True(t, githeri < pilau && pilau < ugali, out)
}

func TestListCommand_EmptyDatabase(t *testing.T) {
	out, _, err := run(t, NewListCommand, emptyDB(t), "text", "")
	require.NoError(t, err)
	assert.Equal(t, "No recipes found.\n", out)
}

func TestListCommand_BadFlags(t *testing.T) {
	db := seedDB(t)

	for _, args := range [][]string{
		{"--sort", "calories"},
		{"--order", "sideways"},
		{"--locale", "not a locale"},
		{"--difficulty", "extreme"},
		{"--since", "15/01/2024"},
		{"--limit", "-1"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, _, err := run(t, NewListCommand, db, "text", "", args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestListCommand_Locale(t *testing.T) {
	db := emptyDB(t)
	for _, name := range []string{"Äppelpaj", "Zucchinibröd", "Kanelbullar"} {
		_, _, err := run(t, NewAddCommand, db, "text", "",
			"--name", name, "--description", "Svensk.", "--ingredient", "Mjöl",
			"--instructions", "Baka.", "--image", "/x.jpg")
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Kanelbullar", "Zucchinibröd", "Äppelpaj"},
		listNames(t, db, "--sort", "name", "--order", "asc", "--locale", "sv"))
	assert.Equal(t, []string{"Äppelpaj", "Kanelbullar", "Zucchinibröd"},
		listNames(t, db, "--sort", "name", "--order", "asc", "--locale", "en"))
}

func TestShowCommand(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewShowCommand, db, "text", "", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Pilau ★\n"))
	assert.Contains(t, out, "5.0 (8)")
	assert.Contains(t, out, "  - Pilau masala")

	out, _, err = run(t, NewShowCommand, db, "json", "", "3")
	require.NoError(t, err)
	var r recipe.Recipe
	decodeData(t, out, &r)
	assert.Equal(t, "Ugali Samaki", r.Name)
	assert.Equal(t, 15, r.TotalRatings)
}

func TestShowCommand_NotFound(t *testing.T) {
	db := seedDB(t)

	_, _, err := run(t, NewShowCommand, db, "text", "", "99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "recipe not found: 99")

	out, _, err := run(t, NewShowCommand, db, "json", "", "99")
	require.Error(t, err)
	assert.Contains(t, out, CodeNotFound)
}

func TestTagsCommand(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewTagsCommand, db, "json", "")
	require.NoError(t, err)

	var rows []TagCount
	decodeData(t, out, &rows)
	require.Len(t, rows, 9)
	assert.Equal(t, TagCount{Tag: "Main Dish", Count: 1}, rows[0])

	out, _, err = run(t, NewTagsCommand, db, "text", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Vegetarian")
	assert.Equal(t, 9, strings.Count(out, "\n"))
}

func TestTagsCommand_Counts(t *testing.T) {
	db := seedDB(t)
	_, _, err := run(t, NewUpdateCommand, db, "text", "", "3", "--tag", "Fish", "--tag", "Main Dish")
	require.NoError(t, err)

	out, _, err := run(t, NewTagsCommand, db, "json", "")
	require.NoError(t, err)
	var rows []TagCount
	decodeData(t, out, &rows)
	assert.Contains(t, rows, TagCount{Tag: "Main Dish", Count: 2})
}

func TestTagsCommand_Empty(t *testing.T) {
	out, _, err := run(t, NewTagsCommand, emptyDB(t), "text", "")
	require.NoError(t, err)
	assert.Equal(t, "No tags.\n", out)
}
