package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a recipe",
		Long:          `Remove a recipe and its tags. An unknown id changes nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	r, _ := cb.Get(id)
	found, err := cb.Delete(cmd.Context(), id)
	if err != nil {
		return out.Fail(recipeError("delete", err))
	}
	if !found {
		return reportMissing(out, id)
	}

	if out.JSON() {
		return out.Success(map[string]any{"id": id, "found": true})
	}
	fmt.Fprintf(out.Writer, "✓ Deleted %s (%s)\n", r.Name, id)
	return nil
}
