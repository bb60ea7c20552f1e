package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/store"
	"github.com/roach88/recipebox/internal/testutil"
)

func TestExportCommand_WritesFile(t *testing.T) {
	db := seedDB(t)
	dir := filepath.Join(t.TempDir(), "shared")

	out, _, err := run(t, NewExportCommand, db, "text", "", "3", "-o", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "ugali-samaki.json")
	assert.Equal(t, "✓ Exported to "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec recipe.ExportRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, recipe.Export(testutil.UgaliSamaki()), rec)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, dropped := range []string{"id", "isFavorite", "ratings", "totalRatings", "dateAdded", "image"} {
		assert.NotContains(t, raw, dropped)
	}
}

func TestExportCommand_NameCannotEscapeOutputDir(t *testing.T) {
	db := seedDB(t)
	s, err := store.Open(db)
	require.NoError(t, err)
	r := testutil.Githeri()
	r.ID = "9"
	r.Name = "../../escape/Mac/Cheese"
	require.NoError(t, s.Put(context.Background(), r))
	require.NoError(t, s.Close())

	dir := filepath.Join(t.TempDir(), "a", "b", "shared")
	_, _, err = run(t, NewExportCommand, db, "text", "", "9", "-o", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "escape-mac-cheese.json", entries[0].Name())

	_, err = os.Stat(filepath.Join(dir, "..", "..", "escape"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportCommand_Stdout(t *testing.T) {
	db := seedDB(t)

	out, _, err := run(t, NewExportCommand, db, "json", "", "1", "--stdout")
	require.NoError(t, err)

	want, err := recipe.MarshalExport(testutil.Githeri())
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestExportCommand_JSONReportsPath(t *testing.T) {
	db := seedDB(t)
	dir := t.TempDir()

	out, _, err := run(t, NewExportCommand, db, "json", "", "2", "--output", dir)
	require.NoError(t, err)

	var data map[string]string
	decodeData(t, out, &data)
	assert.Equal(t, filepath.Join(dir, "pilau.json"), data["path"])
	assert.FileExists(t, data["path"])
}

func TestExportCommand_NotFound(t *testing.T) {
	_, _, err := run(t, NewExportCommand, seedDB(t), "text", "", "99", "--stdout")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
