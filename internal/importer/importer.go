package importer

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/recipebox/internal/recipe"
)

//go:embed schema.cue
var schemaSource string

// Load reads the recipe file at path.
func Load(path string) ([]recipe.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Path: path, Message: err.Error(), Err: err}
	}
	return Parse(path, data)
}

// Parse decodes data, choosing the format from name's extension.
func Parse(name string, data []byte) ([]recipe.Draft, error) {
	var (
		drafts []recipe.Draft
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".cue":
		drafts, err = parseCUE(name, data)
	case ".yaml", ".yml", ".json":
		drafts, err = parseYAML(name, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeFormat,
			Path:    name,
			Message: fmt.Sprintf("unsupported extension %q (want .cue, .yaml, .yml or .json)", ext),
		}
	}
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, &LoadError{Code: ErrCodeEmpty, Path: name, Message: "no recipes found"}
	}

	for i, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, &LoadError{
				Code:    ErrCodeInvalid,
				Path:    name,
				Message: fmt.Sprintf("recipe %d (%q): %v", i+1, d.Name, err),
				Err:     err,
			}
		}
	}
	return drafts, nil
}

// parseCUE unifies each recipe with #Recipe and decodes the concrete result.
func parseCUE(name string, data []byte) ([]recipe.Draft, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, cueError(ErrCodeSchema, "schema.cue", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Recipe"))

	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, cueError(ErrCodeParse, name, err)
	}

	recipes := value.LookupPath(cue.ParsePath("recipes"))
	if !recipes.Exists() {
		d, err := decodeCUE(name, def, value)
		if err != nil {
			return nil, err
		}
		return []recipe.Draft{d}, nil
	}

	if top := value.LookupPath(cue.ParsePath("name")); top.Exists() {
		return nil, &LoadError{
			Code:    ErrCodeMixedLayout,
			Path:    name,
			Message: `file has both "recipes" and a top-level recipe`,
			Pos:     top.Pos(),
		}
	}

	iter, err := recipes.List()
	if err != nil {
		return nil, cueError(ErrCodeDecode, name, fmt.Errorf("recipes must be a list: %w", err))
	}
	var drafts []recipe.Draft
	for iter.Next() {
		d, err := decodeCUE(name, def, iter.Value())
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func decodeCUE(name string, def, v cue.Value) (recipe.Draft, error) {
	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return recipe.Draft{}, cueError(ErrCodeSchema, name, err)
	}
	var d recipe.Draft
	if err := unified.Decode(&d); err != nil {
		return recipe.Draft{}, cueError(ErrCodeDecode, name, err)
	}
	return d, nil
}

// cueError converts a CUE error to a LoadError carrying the first position
// that points into the recipe file rather than the schema.
func cueError(code, name string, err error) *LoadError {
	le := &LoadError{Code: code, Path: name, Message: cueerrors.Details(err, nil), Err: err}
	le.Message = strings.TrimSpace(le.Message)
	for _, e := range cueerrors.Errors(err) {
		for _, pos := range cueerrors.Positions(e) {
			if pos.Filename() == name {
				le.Pos = pos
				le.Message = e.Error()
				return le
			}
		}
	}
	return le
}

// yamlFile is either a single recipe or a list under "recipes".
type yamlFile struct {
	Recipes      []recipe.Draft `yaml:"recipes"`
	recipe.Draft `yaml:",inline"`
}

func parseYAML(name string, data []byte) ([]recipe.Draft, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	var f yamlFile
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeEmpty, Path: name, Message: "file is empty"}
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &LoadError{Code: ErrCodeDecode, Path: name, Message: strings.Join(typeErr.Errors, "; "), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeParse, Path: name, Message: err.Error(), Err: err}
	}

	single := !isZeroDraft(f.Draft)
	switch {
	case len(f.Recipes) > 0 && single:
		return nil, &LoadError{Code: ErrCodeMixedLayout, Path: name, Message: `file has both "recipes" and a top-level recipe`}
	case single:
		return []recipe.Draft{f.Draft}, nil
	default:
		return f.Recipes, nil
	}
}

func isZeroDraft(d recipe.Draft) bool {
	return d.Name == "" && d.Description == "" && len(d.Ingredients) == 0 &&
		len(d.StructuredIngredients) == 0 && d.Instructions == "" && len(d.InstructionSteps) == 0 &&
		d.Image == "" && len(d.Tags) == 0
}
