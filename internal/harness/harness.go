package harness

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/roach88/recipebox/internal/cookbook"
	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/store"
	"github.com/roach88/recipebox/internal/testutil"
)

// Harness is the scenario execution engine.
type Harness struct {
	cookbook *cookbook.Cookbook
	spec     query.Spec
	logger   *zap.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Expectation mismatches are reported in Result.Errors; the returned error
// is reserved for scenarios that cannot run at all.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, zap.NewNop())
}

// RunWithLogger is Run with a logger for step-by-step debugging.
func RunWithLogger(scenario *Scenario, logger *zap.Logger) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	for _, seed := range scenario.Recipes {
		if err := st.Put(ctx, seed.toRecipe()); err != nil {
			return nil, fmt.Errorf("seed %s: %w", seed.ID, err)
		}
	}

	cb := cookbook.New(st,
		cookbook.WithLogger(logger),
		cookbook.WithIDGenerator(testutil.NewSequentialIDGenerator("scenario")),
		cookbook.WithClock(testutil.NewDeterministicClock()),
	)
	if err := cb.Load(ctx); err != nil {
		return nil, err
	}

	locale, _ := query.ParseLocale(scenario.Locale)
	h := &Harness{
		cookbook: cb,
		spec:     query.DefaultSpec().WithLocale(locale),
		logger:   logger.With(zap.String("scenario", scenario.Name)),
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i+1, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return result, nil
}

// executeStep runs one step, appends its trace event and checks its
// expectations.
func (h *Harness) executeStep(ctx context.Context, n int, step Step, result *Result) error {
	event := TraceEvent{Step: n, Action: step.action()}

	switch event.Action {
	case ActionQuery:
		h.spec = step.Query.apply(h.spec)
		event.Spec = h.spec.String()

	case ActionAdd:
		r, err := h.cookbook.Add(ctx, *step.Add)
		if err != nil {
			return err
		}
		event.Target = r.ID

	case ActionToggleFavorite:
		r, found, err := h.cookbook.ToggleFavorite(ctx, step.ToggleFavorite)
		if err != nil {
			return err
		}
		event.Target = step.ToggleFavorite
		event.Found = &found
		if found {
			event.Favorite = &r.IsFavorite
		}

	case ActionRate:
		r, found, err := h.cookbook.Rate(ctx, step.Rate.ID, step.Rate.Stars)
		if err != nil {
			return err
		}
		event.Target = step.Rate.ID
		event.Found = &found
		if found {
			rating := r.RatingValue()
			event.Rating = &rating
		}

	case ActionDelete:
		found, err := h.cookbook.Delete(ctx, step.Delete)
		if err != nil {
			return err
		}
		event.Target = step.Delete
		event.Found = &found
	}

	event.View = recipeNames(h.cookbook.View(h.spec))
	result.Trace = append(result.Trace, event)

	h.logger.Debug("step completed",
		zap.Int("step", n),
		zap.String("action", event.Action),
		zap.String("target", event.Target),
		zap.Strings("view", event.View),
	)

	for _, err := range checkStep(n, step, event) {
		result.AddError(err)
	}
	return nil
}

func recipeNames(recipes []recipe.Recipe) []string {
	names := make([]string, len(recipes))
	for i, r := range recipes {
		names[i] = r.Name
	}
	return names
}

// checkStep compares the event against the step's expectations.
func checkStep(n int, step Step, event TraceEvent) []error {
	var errs []error
	if step.Expect != nil && !slices.Equal(step.Expect, event.View) {
		errs = append(errs, &ExpectationError{
			Step:     n,
			Field:    "view",
			Expected: fmt.Sprintf("%q", step.Expect),
			Actual:   fmt.Sprintf("%q", event.View),
		})
	}
	if step.ExpectFound != nil && (event.Found == nil || *event.Found != *step.ExpectFound) {
		errs = append(errs, &ExpectationError{
			Step:     n,
			Field:    "found",
			Expected: fmt.Sprint(*step.ExpectFound),
			Actual:   formatBool(event.Found),
		})
	}
	if step.ExpectFavorite != nil && (event.Favorite == nil || *event.Favorite != *step.ExpectFavorite) {
		errs = append(errs, &ExpectationError{
			Step:     n,
			Field:    "favorite",
			Expected: fmt.Sprint(*step.ExpectFavorite),
			Actual:   formatBool(event.Favorite),
		})
	}
	return errs
}

func formatBool(b *bool) string {
	if b == nil {
		return "<unset>"
	}
	return fmt.Sprint(*b)
}

// ExpectationError describes one failed step expectation.
type ExpectationError struct {
	Step     int
	Field    string
	Expected string
	Actual   string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d: %s: expected %s, got %s", e.Step, e.Field, e.Expected, e.Actual)
}
