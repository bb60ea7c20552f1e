package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/store"
	"github.com/roach88/recipebox/internal/testutil"
)

// seedDB writes the sample recipes to a fresh database file.
func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	for _, r := range testutil.SampleRecipes() {
		require.NoError(t, s.Put(context.Background(), r))
	}
	require.NoError(t, s.Close())
	return path
}

// emptyDB returns the path of a database with no recipes yet.
func emptyDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "recipes.db")
}

// run builds a command with fresh root options and executes it.
func run(t *testing.T, newCmd func(*RootOptions) *cobra.Command, db, format, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := newCmd(&RootOptions{Format: format, DBPath: db})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// stored reads one recipe straight from the database file.
func stored(t *testing.T, db, id string) (recipe.Recipe, bool) {
	t.Helper()
	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()

	r, err := s.Get(context.Background(), id)
	if errors.Is(err, store.ErrNotFound) {
		return recipe.Recipe{}, false
	}
	require.NoError(t, err)
	return r, true
}

// storedCount returns how many recipes the database holds.
func storedCount(t *testing.T, db string) int {
	t.Helper()
	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	return n
}

// decodeData unmarshals the data field of a JSON CLIResponse into v.
func decodeData(t *testing.T, out string, v any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status, out)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

func recipeNames(recipes []recipe.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}
