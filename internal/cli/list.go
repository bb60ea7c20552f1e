package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/store"
)

const dateLayout = "2006-01-02"

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	viewFlags

	Cuisine    string
	Difficulty string
	Since      string
	Until      string
	Limit      int
}

// viewFlags are the query flags shared by list and search.
type viewFlags struct {
	Favorites bool
	Tags      []string
	SortBy    string
	Order     string
	Locale    string
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&v.Favorites, "favorites", false, "only favorites")
	cmd.Flags().StringArrayVar(&v.Tags, "tag", nil, "require tag (repeatable, exact match)")
	cmd.Flags().StringVar(&v.SortBy, "sort", "", "sort by name, date or rating (default from config)")
	cmd.Flags().StringVar(&v.Order, "order", "", "asc or desc (default from config)")
	cmd.Flags().StringVar(&v.Locale, "locale", "", "BCP 47 locale for name ordering (default from config)")
}

// spec builds the query from the configured defaults and the flags.
func (v *viewFlags) spec(base query.Spec) (query.Spec, error) {
	key, order := base.SortBy, base.Order
	if v.SortBy != "" {
		k, err := query.ParseSortKey(v.SortBy)
		if err != nil {
			return base, WrapExitError(ExitCommandError, "--sort", err)
		}
		key = k
	}
	if v.Order != "" {
		o, err := query.ParseSortOrder(v.Order)
		if err != nil {
			return base, WrapExitError(ExitCommandError, "--order", err)
		}
		order = o
	}
	spec := base.SortedBy(key, order).WithFavoritesOnly(v.Favorites).WithTags(v.Tags...)
	if v.Locale != "" {
		tag, err := query.ParseLocale(v.Locale)
		if err != nil {
			return base, WrapExitError(ExitCommandError, "--locale", err)
		}
		spec = spec.WithLocale(tag)
	}
	return spec, nil
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}
	var term string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Long: `List recipes matching a search term, the favorites filter and required
tags, in the configured order.

--cuisine, --difficulty, --since and --until narrow the candidates through
the database indexes before the search runs. Cuisine and difficulty match
exactly; dates are YYYY-MM-DD and inclusive.

Examples:
  recipebox list
  recipebox list --search rice --sort name --order asc
  recipebox list --favorites --tag Fish
  recipebox list --cuisine Kenyan --since 2024-01-01 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, term, cmd)
		},
	}

	opts.viewFlags.register(cmd)
	cmd.Flags().StringVarP(&term, "search", "s", "", "match name, ingredients or description")
	cmd.Flags().StringVar(&opts.Cuisine, "cuisine", "", "only this cuisine")
	cmd.Flags().StringVar(&opts.Difficulty, "difficulty", "", "only this difficulty")
	cmd.Flags().StringVar(&opts.Since, "since", "", "added on or after date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "added on or before date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most n recipes")

	return cmd
}

func runList(opts *ListOptions, term string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	base, err := opts.Config.DefaultSpec()
	if err != nil {
		return WrapExitError(ExitCommandError, "config", err)
	}
	spec, err := opts.spec(base)
	if err != nil {
		return err
	}
	spec = spec.WithTerm(term)

	lookup, indexed, err := opts.lookup()
	if err != nil {
		return err
	}
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit cannot be negative")
	}

	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	var results []recipe.Recipe
	if indexed {
		candidates, err := cb.Lookup(cmd.Context(), lookup)
		if err != nil {
			return opts.formatter(cmd).Fail(recipeError("list", err))
		}
		results = query.Run(candidates, spec)
	} else {
		results = cb.View(spec)
	}
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	out := opts.formatter(cmd)
	out.VerboseLog("query: %s (%d of %d recipes)", spec, len(results), cb.Len())
	return out.Recipes(results)
}

// lookup converts the index flags. indexed is false when none are set.
func (o *ListOptions) lookup() (l store.Lookup, indexed bool, err error) {
	if o.Cuisine != "" {
		l.Cuisine = o.Cuisine
		indexed = true
	}
	if o.Difficulty != "" {
		d, err := recipe.ParseDifficulty(o.Difficulty)
		if err != nil {
			return l, false, WrapExitError(ExitCommandError, "--difficulty", err)
		}
		l.Difficulty = d
		indexed = true
	}
	if o.Since != "" {
		t, err := time.Parse(dateLayout, o.Since)
		if err != nil {
			return l, false, WrapExitError(ExitCommandError, "--since", fmt.Errorf("want YYYY-MM-DD: %w", err))
		}
		l.AddedFrom = &t
		indexed = true
	}
	if o.Until != "" {
		t, err := time.Parse(dateLayout, o.Until)
		if err != nil {
			return l, false, WrapExitError(ExitCommandError, "--until", fmt.Errorf("want YYYY-MM-DD: %w", err))
		}
		end := t.Add(24*time.Hour - time.Millisecond)
		l.AddedTo = &end
		indexed = true
	}
	return l, indexed, nil
}
