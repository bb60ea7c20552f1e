package recipe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ExportRecord is the flat, shareable projection of a recipe. It drops the
// identifier, favorite flag and ratings.
type ExportRecord struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions string     `json:"instructions"`
	PrepTime     int        `json:"prepTime"`
	CookTime     int        `json:"cookTime"`
	Servings     int        `json:"servings"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	Cuisine      string     `json:"cuisine,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
}

// Export projects r onto an ExportRecord.
func Export(r Recipe) ExportRecord {
	ingredients := cloneStrings(r.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return ExportRecord{
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Cuisine:      r.Cuisine,
		Tags:         cloneStrings(r.Tags),
	}
}

// MarshalExport renders the export record as two-space indented JSON.
func MarshalExport(r Recipe) ([]byte, error) {
	data, err := json.MarshalIndent(Export(r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export %s: %w", r.ID, err)
	}
	return data, nil
}

// separatorRun matches whitespace and characters that are unsafe in file
// names on common filesystems, including path separators.
var separatorRun = regexp.MustCompile(`[\s/\\:*?"<>|\x00-\x1f]+`)

// ExportFilename returns the download name for a recipe: the lowercased
// name with whitespace and unsafe character runs replaced by dashes, plus
// ".json". Leading dots and dashes are dropped so the result is always a
// plain file name that stays inside the directory it is joined to.
func ExportFilename(name string) string {
	base := separatorRun.ReplaceAllString(strings.ToLower(name), "-")
	base = strings.TrimLeft(base, ".-")
	if base == "" {
		base = "recipe"
	}
	return base + ".json"
}
