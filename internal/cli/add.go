package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebox/internal/recipe"
)

// recipeFlags binds the editable recipe fields to command flags.
type recipeFlags struct {
	name         string
	description  string
	ingredients  []string
	instructions string
	steps        []string
	image        string
	prep         int
	cook         int
	servings     int
	difficulty   string
	cuisine      string
	tags         []string
	source       string
	notes        string
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "recipe name")
	fl.StringVar(&f.description, "description", "", "short description")
	fl.StringArrayVar(&f.ingredients, "ingredient", nil, "ingredient line (repeatable)")
	fl.StringVar(&f.instructions, "instructions", "", "free-text instructions")
	fl.StringArrayVar(&f.steps, "step", nil, "instruction step (repeatable)")
	fl.StringVar(&f.image, "image", "", "image URL or path")
	fl.IntVar(&f.prep, "prep", 0, "preparation time in minutes")
	fl.IntVar(&f.cook, "cook", 0, "cooking time in minutes")
	fl.IntVar(&f.servings, "servings", 0, "number of servings (default 1)")
	fl.StringVar(&f.difficulty, "difficulty", "", "Easy, Medium or Hard (default Easy)")
	fl.StringVar(&f.cuisine, "cuisine", "", "cuisine")
	fl.StringArrayVar(&f.tags, "tag", nil, "tag (repeatable)")
	fl.StringVar(&f.source, "source", "", "where the recipe came from")
	fl.StringVar(&f.notes, "notes", "", "free-form notes")
}

// apply copies the flags the user set onto d. Unset flags leave d alone.
func (f *recipeFlags) apply(cmd *cobra.Command, d *recipe.Draft) error {
	changed := cmd.Flags().Changed

	if changed("name") {
		d.Name = f.name
	}
	if changed("description") {
		d.Description = f.description
	}
	if changed("ingredient") {
		d.Ingredients = f.ingredients
		d.StructuredIngredients = nil
	}
	if changed("instructions") {
		d.Instructions = f.instructions
		d.InstructionSteps = nil
	}
	if changed("step") {
		d.InstructionSteps = f.steps
		if !changed("instructions") {
			d.Instructions = ""
		}
	}
	if changed("image") {
		d.Image = f.image
	}
	if changed("prep") {
		d.PrepTime = f.prep
	}
	if changed("cook") {
		d.CookTime = f.cook
	}
	if changed("servings") {
		d.Servings = f.servings
	}
	if changed("difficulty") {
		level, err := recipe.ParseDifficulty(f.difficulty)
		if err != nil {
			return WrapExitError(ExitCommandError, "--difficulty", err)
		}
		d.Difficulty = level
	}
	if changed("cuisine") {
		d.Cuisine = f.cuisine
	}
	if changed("tag") {
		d.Tags = f.tags
	}
	if changed("source") {
		d.Source = f.source
	}
	if changed("notes") {
		d.Notes = f.notes
	}
	return nil
}

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	fields recipeFlags
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe",
		Long: `Add a recipe to the collection.

Name, description, at least one ingredient, instructions and an image are
required. Prep and cook time default to 0, servings to 1 and difficulty to
Easy. Up to 10 distinct tags are kept.

Example:
  recipebox add --name Chapati --description "Layered flatbread" \
    --ingredient "2 cups flour" --ingredient "1 cup water" \
    --step "Knead the dough." --step "Roll and fry." \
    --image /chapati.jpg --tag Bread --servings 8`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	opts.fields.register(cmd)

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	var d recipe.Draft
	if err := opts.fields.apply(cmd, &d); err != nil {
		return err
	}

	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	r, err := cb.Add(cmd.Context(), d)
	if err != nil {
		return out.Fail(recipeError("add", err))
	}

	if out.JSON() {
		return out.Success(r)
	}
	fmt.Fprintf(out.Writer, "✓ Added %s (%s)\n", r.Name, r.ID)
	return nil
}
