package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/recipebox/internal/importer"
	"github.com/roach88/recipebox/internal/recipe"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	DryRun bool
}

// ImportResult summarizes an import.
type ImportResult struct {
	Files   []string        `json:"files"`
	Checked int             `json:"checked"`
	Added   []recipe.Recipe `json:"added"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import recipes from CUE, YAML or JSON files",
		Long: `Import recipes from files. Each file holds one recipe or a top-level
"recipes" list. CUE files are checked against the built-in #Recipe schema;
YAML and JSON files are decoded strictly.

Every file is loaded and validated before anything is added, so a bad file
leaves the collection unchanged.

Examples:
  recipebox import kenyan.cue
  recipebox import pilau.yaml githeri.json --dry-run`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate files without adding recipes")

	return cmd
}

func runImport(opts *ImportOptions, paths []string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	out := opts.formatter(cmd)

	var drafts []recipe.Draft
	for _, path := range paths {
		loaded, err := importer.Load(path)
		if err != nil {
			return out.Fail(recipeError("import", err))
		}
		opts.Logger.Debug("loaded recipe file", zap.String("path", path), zap.Int("recipes", len(loaded)))
		drafts = append(drafts, loaded...)
	}

	result := ImportResult{Files: paths, Checked: len(drafts), Added: []recipe.Recipe{}}
	if opts.DryRun {
		if out.JSON() {
			return out.Success(result)
		}
		fmt.Fprintf(out.Writer, "✓ %d recipe(s) in %d file(s) are valid\n", len(drafts), len(paths))
		return nil
	}

	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	for _, d := range drafts {
		r, err := cb.Add(cmd.Context(), d)
		if err != nil {
			return out.Fail(recipeError(fmt.Sprintf("import %q", d.Name), err))
		}
		result.Added = append(result.Added, r)
	}

	if out.JSON() {
		return out.Success(result)
	}
	for _, r := range result.Added {
		fmt.Fprintf(out.Writer, "✓ Added %s (%s)\n", r.Name, r.ID)
	}
	fmt.Fprintf(out.Writer, "Imported %d recipe(s) from %d file(s)\n", len(result.Added), len(paths))
	return nil
}
