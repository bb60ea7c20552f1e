package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	OutputDir string
	Stdout    bool
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a recipe as a shareable JSON file",
		Long: `Write a recipe as an indented JSON document named after the recipe,
for example "ugali-samaki.json". The id, favorite flag and ratings are
left out.

Examples:
  recipebox export 0192f0c4-7d1e-7c3a-9b1f-3e2d5a6b7c8d
  recipebox export 0192f0c4-7d1e-7c3a-9b1f-3e2d5a6b7c8d -o ./shared
  recipebox export 0192f0c4-7d1e-7c3a-9b1f-3e2d5a6b7c8d --stdout`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", ".", "directory to write the file to")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "write the document to stdout instead of a file")

	return cmd
}

func runExport(opts *ExportOptions, id string, cmd *cobra.Command) error {
	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	data, filename, found, err := cb.Export(id)
	if err != nil {
		return out.Fail(recipeError("export", err))
	}
	if !found {
		msg := fmt.Sprintf("recipe not found: %s", id)
		if out.JSON() {
			if err := out.Error(CodeNotFound, msg, nil); err != nil {
				return err
			}
		}
		return NewExitError(ExitFailure, msg)
	}

	if opts.Stdout {
		_, err := out.Writer.Write(data)
		return err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return WrapExitError(ExitCommandError, "create output directory", err)
	}
	path := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WrapExitError(ExitCommandError, "write export", err)
	}
	opts.Logger.Debug("exported recipe", zap.String("id", id), zap.String("path", path))

	if out.JSON() {
		return out.Success(map[string]string{"id": id, "path": path})
	}
	fmt.Fprintf(out.Writer, "✓ Exported to %s\n", path)
	return nil
}
