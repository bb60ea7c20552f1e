package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe in full",
		Example: `  recipebox show 0192f0c4-7d1e-7c3a-9b1f-3e2d5a6b7c8d
  recipebox show 0192f0c4-7d1e-7c3a-9b1f-3e2d5a6b7c8d --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	r, ok := cb.Get(id)
	if !ok {
		msg := fmt.Sprintf("recipe not found: %s", id)
		if out.JSON() {
			if err := out.Error(CodeNotFound, msg, nil); err != nil {
				return err
			}
		}
		return NewExitError(ExitFailure, msg)
	}
	return out.Recipe(r)
}
