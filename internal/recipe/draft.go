package recipe

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Draft is what a form collects before the recipe exists. New turns it into
// a Recipe by assigning identity and defaults.
type Draft struct {
	Name                  string       `json:"name" yaml:"name"`
	Description           string       `json:"description" yaml:"description"`
	Ingredients           []string     `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	StructuredIngredients []Ingredient `json:"structuredIngredients,omitempty" yaml:"structuredIngredients,omitempty"`
	Instructions          string       `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	InstructionSteps      []string     `json:"instructionSteps,omitempty" yaml:"instructionSteps,omitempty"`
	Image                 string       `json:"image,omitempty" yaml:"image,omitempty"`
	PrepTime              int          `json:"prepTime,omitempty" yaml:"prepTime,omitempty"`
	CookTime              int          `json:"cookTime,omitempty" yaml:"cookTime,omitempty"`
	Servings              int          `json:"servings,omitempty" yaml:"servings,omitempty"`
	Difficulty            Difficulty   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Cuisine               string       `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	Tags                  []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source                string       `json:"source,omitempty" yaml:"source,omitempty"`
	Notes                 string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ValidationError collects field-level messages for a rejected draft.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid recipe: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, or "" when the field is valid.
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// Validate checks the required fields and numeric ranges. It returns nil or
// a *ValidationError.
func (d Draft) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(d.Name) == "" {
		fields["name"] = "Recipe name is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		fields["description"] = "Description is required"
	}

	ingredients := d.ingredientLines()
	switch {
	case len(ingredients) == 0:
		fields["ingredients"] = "Add at least one ingredient"
	case hasBlank(ingredients) || hasBlankIngredientName(d.StructuredIngredients):
		fields["ingredients"] = "All ingredients must have a name"
	}

	if d.instructionText() == "" {
		fields["instructions"] = "Add at least one instruction step"
	}
	if strings.TrimSpace(d.Image) == "" {
		fields["image"] = "Please add an image"
	}

	if d.PrepTime < 0 {
		fields["prepTime"] = "Prep time cannot be negative"
	}
	if d.CookTime < 0 {
		fields["cookTime"] = "Cook time cannot be negative"
	}
	if d.Servings < 0 {
		fields["servings"] = "Servings must be positive"
	}
	if d.Difficulty != "" && !d.Difficulty.Valid() {
		fields["difficulty"] = fmt.Sprintf("Difficulty must be one of %v", Difficulties)
	}
	if len(NormalizeTags(d.Tags)) > MaxTags {
		fields["tags"] = fmt.Sprintf("At most %d tags are allowed", MaxTags)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// New validates d and builds a Recipe with a fresh ID and DateAdded.
// Unset optional fields take their defaults: prep and cook time 0, one
// serving, Easy difficulty, not a favorite, unrated.
func New(d Draft, ids IDGenerator, clock Clock) (Recipe, error) {
	if err := d.Validate(); err != nil {
		return Recipe{}, err
	}

	// Millisecond precision matches what the store persists.
	added := clock.Now().UTC().Truncate(time.Millisecond)
	zero := 0.0

	r := d.apply(Recipe{
		ID:        ids.Generate(),
		DateAdded: &added,
		Rating:    &zero,
	})
	if r.Servings == 0 {
		r.Servings = 1
	}
	if r.Difficulty == "" {
		r.Difficulty = Easy
	}
	return r, nil
}

// Revise validates d and applies its editable fields to r. The ID,
// DateAdded, favorite flag and rating of r are kept.
func Revise(r Recipe, d Draft) (Recipe, error) {
	if err := d.Validate(); err != nil {
		return r, err
	}
	out := d.apply(r.Clone())
	if out.Servings == 0 {
		out.Servings = 1
	}
	if out.Difficulty == "" {
		out.Difficulty = Easy
	}
	return out, nil
}

// Draft returns the editable fields of r, for re-validation on update.
func (r Recipe) Draft() Draft {
	return Draft{
		Name:                  r.Name,
		Description:           r.Description,
		Ingredients:           cloneStrings(r.Ingredients),
		StructuredIngredients: append([]Ingredient(nil), r.StructuredIngredients...),
		Instructions:          r.Instructions,
		InstructionSteps:      cloneStrings(r.InstructionSteps),
		Image:                 r.Image,
		PrepTime:              r.PrepTime,
		CookTime:              r.CookTime,
		Servings:              r.Servings,
		Difficulty:            r.Difficulty,
		Cuisine:               r.Cuisine,
		Tags:                  cloneStrings(r.Tags),
		Source:                r.Source,
		Notes:                 r.Notes,
	}
}

// apply copies the draft's editable fields onto base.
func (d Draft) apply(base Recipe) Recipe {
	base.Name = strings.TrimSpace(d.Name)
	base.Description = strings.TrimSpace(d.Description)
	base.Ingredients = d.ingredientLines()
	base.StructuredIngredients = nil
	if len(d.StructuredIngredients) > 0 {
		base.StructuredIngredients = append([]Ingredient(nil), d.StructuredIngredients...)
	}
	base.Instructions = d.instructionText()
	base.InstructionSteps = nonBlank(d.InstructionSteps)
	base.Image = strings.TrimSpace(d.Image)
	base.PrepTime = d.PrepTime
	base.CookTime = d.CookTime
	base.Servings = d.Servings
	base.Difficulty = d.Difficulty
	base.Cuisine = strings.TrimSpace(d.Cuisine)
	base.Tags = NormalizeTags(d.Tags)
	base.Source = strings.TrimSpace(d.Source)
	base.Notes = strings.TrimSpace(d.Notes)
	return base
}

// ingredientLines returns the plain ingredient list, deriving it from the
// structured list ("2 cups rice") when only that was given.
func (d Draft) ingredientLines() []string {
	if len(d.Ingredients) > 0 {
		lines := make([]string, len(d.Ingredients))
		for i, ing := range d.Ingredients {
			lines[i] = strings.TrimSpace(ing)
		}
		return lines
	}
	if len(d.StructuredIngredients) == 0 {
		return nil
	}
	lines := make([]string, len(d.StructuredIngredients))
	for i, ing := range d.StructuredIngredients {
		parts := []string{}
		for _, p := range []string{ing.Quantity, ing.Unit, ing.Name} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		lines[i] = strings.Join(parts, " ")
	}
	return lines
}

// instructionText returns the free-text instructions, or the steps joined by
// newlines when only steps were given.
func (d Draft) instructionText() string {
	if text := strings.TrimSpace(d.Instructions); text != "" {
		return text
	}
	return strings.Join(nonBlank(d.InstructionSteps), "\n")
}

func hasBlank(lines []string) bool {
	for _, l := range lines {
		if l == "" {
			return true
		}
	}
	return false
}

func hasBlankIngredientName(ings []Ingredient) bool {
	for _, ing := range ings {
		if strings.TrimSpace(ing.Name) == "" {
			return true
		}
	}
	return false
}

func nonBlank(lines []string) []string {
	var out []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
