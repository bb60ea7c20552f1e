package recipe

import "time"

// Recipe is a dish and its metadata.
type Recipe struct {
	ID                    string       `json:"id"`
	Name                  string       `json:"name"`
	Description           string       `json:"description"`
	Ingredients           []string     `json:"ingredients"`
	StructuredIngredients []Ingredient `json:"structuredIngredients,omitempty"`
	Instructions          string       `json:"instructions"`
	InstructionSteps      []string     `json:"instructionSteps,omitempty"`
	Image                 string       `json:"image"`
	IsFavorite            bool         `json:"isFavorite"`
	PrepTime              int          `json:"prepTime"`
	CookTime              int          `json:"cookTime"`
	Servings              int          `json:"servings"`
	Difficulty            Difficulty   `json:"difficulty,omitempty"`
	Cuisine               string       `json:"cuisine,omitempty"`
	Tags                  []string     `json:"tags,omitempty"`

	// DateAdded is nil for records that predate creation timestamps.
	DateAdded *time.Time `json:"dateAdded,omitempty"`

	// Rating is the 0-5 average; nil means never rated.
	Rating       *float64 `json:"ratings,omitempty"`
	TotalRatings int      `json:"totalRatings"`

	Source string `json:"source,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// Ingredient is one line of a structured ingredient list.
type Ingredient struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Name     string `json:"name" yaml:"name"`
}

// AddedAt returns DateAdded, or the Unix epoch when it is unknown.
func (r Recipe) AddedAt() time.Time {
	if r.DateAdded == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.DateAdded
}

// RatingValue returns the average rating, or 0 when the recipe was never rated.
func (r Recipe) RatingValue() float64 {
	if r.Rating == nil || r.TotalRatings == 0 {
		return 0
	}
	return *r.Rating
}

// TotalTime is prep plus cook time in minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// HasTag reports whether the recipe carries tag exactly.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate slices without aliasing.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = cloneStrings(r.Ingredients)
	c.InstructionSteps = cloneStrings(r.InstructionSteps)
	c.Tags = cloneStrings(r.Tags)
	if r.StructuredIngredients != nil {
		c.StructuredIngredients = append([]Ingredient(nil), r.StructuredIngredients...)
	}
	if r.DateAdded != nil {
		t := *r.DateAdded
		c.DateAdded = &t
	}
	if r.Rating != nil {
		v := *r.Rating
		c.Rating = &v
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
