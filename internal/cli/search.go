package cli

import (
	"bufio"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/recipe"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	viewFlags
	Debounce time.Duration
}

// SearchResult is one settled search.
type SearchResult struct {
	Term    string          `json:"term"`
	Count   int             `json:"count"`
	Recipes []recipe.Recipe `json:"recipes"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search interactively, one term per input line",
		Long: `Read search terms from stdin, one per line, as if typed into a search
box. Results are shown once typing pauses for the debounce window; a term
replaced before the window ends is never searched. End of input searches
the last term immediately.

In JSON mode each settled search is written as one JSON line.

Examples:
  recipebox search
  printf 'pil\npilau\n' | recipebox search --debounce 50ms --favorites`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, cmd)
		},
	}

	opts.viewFlags.register(cmd)
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 0, "pause before a term is searched (default from config)")

	return cmd
}

func runSearch(opts *SearchOptions, cmd *cobra.Command) error {
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

	window := opts.Debounce
	if !cmd.Flags().Changed("debounce") {
		if window, err = opts.Config.DebounceWindow(); err != nil {
			return WrapExitError(ExitCommandError, "config", err)
		}
	}
	if window < 0 {
		return NewExitError(ExitCommandError, "--debounce cannot be negative")
	}

	cb, closeStore, err := opts.openCookbook(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := opts.formatter(cmd)
	var mu sync.Mutex
	show := func(spec query.Spec, results []recipe.Recipe) {
		mu.Lock()
		defer mu.Unlock()
		if results == nil {
			results = []recipe.Recipe{}
		}
		if out.JSON() {
			_ = out.Success(SearchResult{Term: spec.Term, Count: len(results), Recipes: results})
			return
		}
		fmt.Fprintf(out.Writer, "search %q: %d recipe(s)\n", spec.Term, len(results))
		if len(results) > 0 {
			_ = writeRecipeTable(out.Writer, results)
		}
	}

	search := cb.NewSearch(spec, window, show)
	defer search.Close()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		search.Type(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "read search terms", err)
	}
	search.Submit()

	if recent := search.Recent(); len(recent) > 0 && !out.JSON() {
		mu.Lock()
		fmt.Fprintf(out.Writer, "Recent searches: %s\n", strings.Join(recent, ", "))
		mu.Unlock()
	}
	return nil
}
