package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewRateCommand creates the rate command.
func NewRateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate <id> <stars>",
		Short: "Rate a recipe from 0 to 5 stars",
		Long: `Fold one rating into the recipe's running average.

Example:
  recipebox rate 0192f0c4-7d1e-7c3a-9b1f-3e2d5a6b7c8d 4.5`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stars, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid stars %q", args[1]), err)
			}
			return runRate(rootOpts, args[0], stars, cmd)
		},
	}
	return cmd
}

func runRate(opts *RootOptions, id string, stars float64, cmd *cobra.Command) error {
	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	r, found, err := cb.Rate(cmd.Context(), id, stars)
	if err != nil {
		return out.Fail(recipeError("rate", err))
	}
	if !found {
		return reportMissing(out, id)
	}

	if out.JSON() {
		return out.Success(r)
	}
	fmt.Fprintf(out.Writer, "✓ Rated %s: now %s\n", r.Name, formatRating(r))
	return nil
}
