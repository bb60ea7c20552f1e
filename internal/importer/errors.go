package importer

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error codes for LoadError.
const (
	ErrCodeRead        = "I001" // File could not be read
	ErrCodeFormat      = "I002" // Unsupported file extension
	ErrCodeParse       = "I003" // Syntax error
	ErrCodeSchema      = "I004" // CUE schema violation
	ErrCodeDecode      = "I005" // Shape does not match a recipe
	ErrCodeEmpty       = "I006" // No recipes in the file
	ErrCodeInvalid     = "I007" // Draft failed recipe validation
	ErrCodeMixedLayout = "I008" // Both "recipes" and top-level recipe fields
)

// LoadError describes why a recipe file was rejected.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Pos     token.Pos // CUE position if available

	// Err is the underlying error, if any.
	Err error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
