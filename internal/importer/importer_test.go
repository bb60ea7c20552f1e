package importer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
)

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func requireLoadError(t *testing.T, err error, code string) *LoadError {
	t.Helper()
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le), "expected *LoadError, got %T: %v", err, err)
	assert.Equal(t, code, le.Code, le.Error())
	return le
}

func TestLoad_CUEList(t *testing.T) {
	drafts, err := Load(testdata("kenyan.cue"))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	sukuma := drafts[0]
	assert.Equal(t, "Sukuma Wiki", sukuma.Name)
	assert.Equal(t, 10, sukuma.PrepTime)
	assert.Equal(t, recipe.Easy, sukuma.Difficulty)
	assert.Equal(t, []string{"Vegetarian", "Quick", "Side"}, sukuma.Tags)

	mandazi := drafts[1]
	require.Len(t, mandazi.StructuredIngredients, 3)
	assert.Equal(t, recipe.Ingredient{Quantity: "1/2", Unit: "cup", Name: "sugar"}, mandazi.StructuredIngredients[1])
	assert.Equal(t, []string{"Mix the dough.", "Rest for an hour.", "Cut and fry."}, mandazi.InstructionSteps)
	assert.Equal(t, recipe.Medium, mandazi.Difficulty)
}

func TestLoad_CUESingle(t *testing.T) {
	drafts, err := Load(testdata("single.cue"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Chapati", drafts[0].Name)
	assert.Equal(t, 8, drafts[0].Servings)
}

func TestLoad_CUESchemaViolations(t *testing.T) {
	tests := []struct {
		file string
		code string
	}{
		{"bad_servings.cue", ErrCodeSchema},
		{"bad_difficulty.cue", ErrCodeSchema},
		{"too_many_tags.cue", ErrCodeSchema},
		{"unknown_field.cue", ErrCodeSchema},
		{"syntax_error.cue", ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Load(testdata(tt.file))
			le := requireLoadError(t, err, tt.code)
			assert.Equal(t, testdata(tt.file), le.Path)
		})
	}
}

func TestLoad_CUEErrorPointsIntoRecipeFile(t *testing.T) {
	_, err := Load(testdata("bad_servings.cue"))
	le := requireLoadError(t, err, ErrCodeSchema)
	require.True(t, le.Pos.IsValid())
	assert.Equal(t, testdata("bad_servings.cue"), le.Pos.Filename())
	assert.Equal(t, 6, le.Pos.Line())
}

func TestLoad_YAML(t *testing.T) {
	drafts, err := Load(testdata("pilau.yaml"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, "Pilau", d.Name)
	assert.Equal(t, []string{"Rice", "Beef", "Pilau masala"}, d.Ingredients)
	assert.Equal(t, 6, d.Servings)
	assert.Equal(t, recipe.Medium, d.Difficulty)
	assert.Equal(t, "Best with kachumbari.", d.Notes)
}

func TestLoad_YAMLList(t *testing.T) {
	drafts, err := Load(testdata("list.yml"))
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "Kachumbari", drafts[0].Name)
	assert.Equal(t, recipe.Hard, drafts[1].Difficulty)
}

func TestLoad_JSON(t *testing.T) {
	drafts, err := Load(testdata("githeri.json"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, []string{"Boil maize and beans.", "Fry onions.", "Combine."}, drafts[0].InstructionSteps)
	assert.Equal(t, "Kenyan", drafts[0].Cuisine)
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		file string
		code string
	}{
		{"unknown_field.yaml", ErrCodeDecode},
		{"missing_image.yaml", ErrCodeInvalid},
		{"mixed.yaml", ErrCodeMixedLayout},
		{"empty.yaml", ErrCodeEmpty},
		{"does_not_exist.yaml", ErrCodeRead},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Load(testdata(tt.file))
			requireLoadError(t, err, tt.code)
		})
	}
}

func TestLoad_InvalidDraftUnwrapsToValidationError(t *testing.T) {
	_, err := Load(testdata("missing_image.yaml"))
	var verr *recipe.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Field("image"))
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse("recipes.toml", []byte(`name = "x"`))
	requireLoadError(t, err, ErrCodeFormat)
}

func TestParse_ExtensionIsCaseInsensitive(t *testing.T) {
	drafts, err := Parse("PILAU.YAML", []byte(`
name: Pilau
description: Rice.
image: /p.jpg
ingredients: [Rice]
instructions: Cook.
`))
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestLoadError_Format(t *testing.T) {
	err := &LoadError{Code: ErrCodeEmpty, Path: "x.yaml", Message: "no recipes found"}
	assert.Equal(t, "x.yaml: I006: no recipes found", err.Error())
}
