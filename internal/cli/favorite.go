package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFavoriteCommand creates the favorite command.
func NewFavoriteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a recipe's favorite flag",
		Long: `Flip the favorite flag of a recipe. Running it twice restores the
original state. An unknown id changes nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavorite(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runFavorite(opts *RootOptions, id string, cmd *cobra.Command) error {
	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	r, found, err := cb.ToggleFavorite(cmd.Context(), id)
	if err != nil {
		return out.Fail(recipeError("favorite", err))
	}
	if !found {
		return reportMissing(out, id)
	}

	if out.JSON() {
		return out.Success(r)
	}
	if r.IsFavorite {
		fmt.Fprintf(out.Writer, "★ %s is now a favorite\n", r.Name)
	} else {
		fmt.Fprintf(out.Writer, "%s is no longer a favorite\n", r.Name)
	}
	return nil
}
