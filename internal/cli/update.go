package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebox/internal/recipe"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	fields recipeFlags
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a recipe",
		Long: `Edit the fields of an existing recipe. Only the flags given are changed;
the id, date added, favorite flag and rating are never touched. The edited
recipe is validated like a new one.

Example:
  recipebox update 0192f0c4-... --servings 6 --tag Festive --tag Rice`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args[0], cmd)
		},
	}

	opts.fields.register(cmd)

	return cmd
}

func runUpdate(opts *UpdateOptions, id string, cmd *cobra.Command) error {
	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	current, ok := cb.Get(id)
	if !ok {
		return reportMissing(out, id)
	}

	d := current.Draft()
	if err := opts.fields.apply(cmd, &d); err != nil {
		return err
	}
	edited, err := recipe.Revise(current, d)
	if err != nil {
		return out.Fail(recipeError("update", err))
	}

	r, _, err := cb.Update(cmd.Context(), edited)
	if err != nil {
		return out.Fail(recipeError("update", err))
	}

	if out.JSON() {
		return out.Success(r)
	}
	fmt.Fprintf(out.Writer, "✓ Updated %s (%s)\n", r.Name, r.ID)
	return nil
}

// reportMissing tells the user that nothing was changed because id is
// unknown. It is not an error.
func reportMissing(out *OutputFormatter, id string) error {
	if out.JSON() {
		return out.Success(map[string]any{"id": id, "found": false})
	}
	fmt.Fprintf(out.Writer, "No recipe with id %s; nothing changed.\n", id)
	return nil
}
