package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/recipe"
)

// Scenario is a seeded collection and a sequence of steps against it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Locale is the BCP 47 collation locale; empty means English.
	Locale string `yaml:"locale,omitempty"`

	// Recipes are stored before the first step.
	Recipes []SeedRecipe `yaml:"recipes"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`
}

// SeedRecipe is a stored record with explicit identity and state.
type SeedRecipe struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Ingredients  []string          `yaml:"ingredients,omitempty"`
	Favorite     bool              `yaml:"favorite,omitempty"`
	Tags         []string          `yaml:"tags,omitempty"`
	Cuisine      string            `yaml:"cuisine,omitempty"`
	Difficulty   recipe.Difficulty `yaml:"difficulty,omitempty"`
	DateAdded    string            `yaml:"date_added,omitempty"` // YYYY-MM-DD
	Rating       *float64          `yaml:"rating,omitempty"`
	TotalRatings int               `yaml:"total_ratings,omitempty"`
}

// Step performs one action. Exactly one action field must be set.
type Step struct {
	Query          *QueryStep    `yaml:"query,omitempty"`
	Add            *recipe.Draft `yaml:"add,omitempty"`
	ToggleFavorite string        `yaml:"toggle_favorite,omitempty"`
	Rate           *RateStep     `yaml:"rate,omitempty"`
	Delete         string        `yaml:"delete,omitempty"`

	// Expect lists the recipe names of the view after the step, in order.
	// Nil skips the check; an empty list expects an empty view.
	Expect []string `yaml:"expect"`

	// ExpectFound checks whether a mutation found its target.
	ExpectFound *bool `yaml:"expect_found,omitempty"`

	// ExpectFavorite checks the flag after toggle_favorite.
	ExpectFavorite *bool `yaml:"expect_favorite,omitempty"`
}

// QueryStep replaces the filters of the current query. Sort fields are
// kept from the previous query when omitted.
type QueryStep struct {
	Term          string   `yaml:"term,omitempty"`
	FavoritesOnly bool     `yaml:"favorites_only,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	SortBy        string   `yaml:"sort_by,omitempty"`
	Order         string   `yaml:"order,omitempty"`
}

// RateStep adds one star rating to a recipe.
type RateStep struct {
	ID    string  `yaml:"id"`
	Stars float64 `yaml:"stars"`
}

// Step action names, as they appear in traces.
const (
	ActionQuery          = "query"
	ActionAdd            = "add"
	ActionToggleFavorite = "toggle_favorite"
	ActionRate           = "rate"
	ActionDelete         = "delete"
)

// action returns the name of the step's single action, or "" if the step
// sets none or several.
func (s Step) action() string {
	var names []string
	if s.Query != nil {
		names = append(names, ActionQuery)
	}
	if s.Add != nil {
		names = append(names, ActionAdd)
	}
	if s.ToggleFavorite != "" {
		names = append(names, ActionToggleFavorite)
	}
	if s.Rate != nil {
		names = append(names, ActionRate)
	}
	if s.Delete != "" {
		names = append(names, ActionDelete)
	}
	if len(names) != 1 {
		return ""
	}
	return names[0]
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if _, err := query.ParseLocale(s.Locale); err != nil {
		return err
	}

	seen := map[string]bool{}
	for i, r := range s.Recipes {
		if r.ID == "" {
			return fmt.Errorf("recipes[%d]: id is required", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("recipes[%d]: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true
		if r.Name == "" {
			return fmt.Errorf("recipes[%d]: name is required", i)
		}
		if _, err := r.dateAdded(); err != nil {
			return fmt.Errorf("recipes[%d]: %w", i, err)
		}
	}

	for i, step := range s.Steps {
		action := step.action()
		if action == "" {
			return fmt.Errorf("steps[%d]: exactly one of query, add, toggle_favorite, rate, delete is required", i)
		}
		if step.ExpectFavorite != nil && action != ActionToggleFavorite {
			return fmt.Errorf("steps[%d]: expect_favorite only applies to toggle_favorite", i)
		}
		if step.ExpectFound != nil && (action == ActionQuery || action == ActionAdd) {
			return fmt.Errorf("steps[%d]: expect_found only applies to mutations of existing recipes", i)
		}
		if step.Query != nil {
			if err := step.Query.validate(); err != nil {
				return fmt.Errorf("steps[%d].query: %w", i, err)
			}
		}
		if step.Rate != nil && step.Rate.ID == "" {
			return fmt.Errorf("steps[%d].rate: id is required", i)
		}
	}

	return nil
}

func (q *QueryStep) validate() error {
	if q.SortBy != "" {
		if _, err := query.ParseSortKey(q.SortBy); err != nil {
			return err
		}
	}
	if q.Order != "" {
		if _, err := query.ParseSortOrder(q.Order); err != nil {
			return err
		}
	}
	return nil
}

// apply returns base with this step's filters and any given sort fields.
func (q *QueryStep) apply(base query.Spec) query.Spec {
	spec := base.WithTerm(q.Term).WithFavoritesOnly(q.FavoritesOnly).WithTags(q.Tags...)
	key, order := spec.SortBy, spec.Order
	if q.SortBy != "" {
		key, _ = query.ParseSortKey(q.SortBy)
	}
	if q.Order != "" {
		order, _ = query.ParseSortOrder(q.Order)
	}
	return spec.SortedBy(key, order)
}

func (r SeedRecipe) dateAdded() (*time.Time, error) {
	if r.DateAdded == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, r.DateAdded)
	if err != nil {
		return nil, fmt.Errorf("date_added: %w", err)
	}
	return &t, nil
}

// toRecipe builds the stored record. validateScenario has already
// checked the date.
func (r SeedRecipe) toRecipe() recipe.Recipe {
	added, _ := r.dateAdded()
	return recipe.Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		IsFavorite:   r.Favorite,
		Servings:     1,
		Difficulty:   r.Difficulty,
		Cuisine:      r.Cuisine,
		Tags:         recipe.NormalizeTags(r.Tags),
		DateAdded:    added,
		Rating:       r.Rating,
		TotalRatings: r.TotalRatings,
	}
}
