package recipe_test

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/testutil"
)

func TestMarshalExport_Golden(t *testing.T) {
	data, err := recipe.MarshalExport(testutil.Githeri())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "githeri_export", append(data, '\n'))
}

func TestExport_DropsIdentityFavoriteAndRatings(t *testing.T) {
	data, err := recipe.MarshalExport(testutil.Pilau())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, dropped := range []string{"id", "isFavorite", "ratings", "totalRatings", "dateAdded", "image"} {
		assert.NotContains(t, fields, dropped)
	}
	assert.Equal(t, "Pilau", fields["name"])
	assert.Equal(t, "Swahili", fields["cuisine"])
}

func TestExport_OmitsEmptyCuisineAndTags(t *testing.T) {
	r := testutil.Githeri()
	r.Cuisine = ""
	r.Tags = nil
	r.Ingredients = nil

	rec := recipe.Export(r)
	assert.Equal(t, []string{}, rec.Ingredients)

	data, err := recipe.MarshalExport(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"cuisine"`)
	assert.NotContains(t, string(data), `"tags"`)
	assert.Contains(t, string(data), `"ingredients": []`)
}

func TestExport_DoesNotAliasRecipe(t *testing.T) {
	r := testutil.Githeri()
	rec := recipe.Export(r)
	rec.Tags[0] = "changed"
	assert.Equal(t, "Main Dish", r.Tags[0])
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Githeri", "githeri.json"},
		{"Ugali Samaki", "ugali-samaki.json"},
		{"Chicken  Tikka\tMasala", "chicken-tikka-masala.json"},
		{"Mac/Cheese", "mac-cheese.json"},
		{"Mac / Cheese", "mac-cheese.json"},
		{`C:\Windows\Stew`, "c-windows-stew.json"},
		{"../../etc/passwd", "etc-passwd.json"},
		{".hidden", "hidden.json"},
		{"Stir-Fry", "stir-fry.json"},
		{"Café Crème", "café-crème.json"},
		{"...", "recipe.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recipe.ExportFilename(tt.name))
		})
	}
}
