package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roach88/recipebox/internal/importer"
	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected recipe, failed write, failed scenario
	ExitCommandError = 2 // Bad arguments, unreadable config or database
)

// Error codes reported in JSON responses.
const (
	CodeInvalidRecipe = "E_INVALID_RECIPE"
	CodeNotFound      = "E_NOT_FOUND"
	CodeStorage       = "E_STORAGE"
	CodeImport        = "E_IMPORT"
	CodeTestFailed    = "E_TEST_FAILED"
	CodeCommand       = "E_COMMAND"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// recipeError maps errors from the cookbook and importer to exit codes.
// File errors are checked first since they may wrap a ValidationError.
func recipeError(op string, err error) error {
	var verr *recipe.ValidationError
	var lerr *importer.LoadError
	switch {
	case errors.As(err, &lerr):
		return WrapExitError(ExitFailure, op, err)
	case errors.As(err, &verr):
		return WrapExitError(ExitFailure, op+": invalid recipe", err)
	case errors.Is(err, recipe.ErrInvalidRating):
		return WrapExitError(ExitFailure, op, err)
	case store.IsStorageError(err):
		return WrapExitError(ExitFailure, op+": change may not persist", err)
	}
	return WrapExitError(ExitCommandError, op, err)
}

// errorCode picks the JSON error code for err.
func errorCode(err error) string {
	var verr *recipe.ValidationError
	var lerr *importer.LoadError
	switch {
	case errors.As(err, &lerr):
		return CodeImport
	case errors.As(err, &verr), errors.Is(err, recipe.ErrInvalidRating):
		return CodeInvalidRecipe
	case store.IsStorageError(err):
		return CodeStorage
	}
	return CodeCommand
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E_NOT_FOUND", "E_STORAGE", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// JSON reports whether output is JSON.
func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.JSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.JSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err in JSON mode and returns it for the exit code. Text
// mode leaves printing to main.
func (f *OutputFormatter) Fail(err error) error {
	if f.JSON() {
		if werr := f.Error(errorCode(err), err.Error(), nil); werr != nil {
			return werr
		}
	}
	return err
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// Recipes outputs a list of recipes: a table in text mode, the full
// records in JSON mode.
func (f *OutputFormatter) Recipes(recipes []recipe.Recipe) error {
	if f.JSON() {
		if recipes == nil {
			recipes = []recipe.Recipe{}
		}
		return f.Success(recipes)
	}
	if len(recipes) == 0 {
		fmt.Fprintln(f.Writer, "No recipes found.")
		return nil
	}
	return writeRecipeTable(f.Writer, recipes)
}

// Recipe outputs one recipe in full.
func (f *OutputFormatter) Recipe(r recipe.Recipe) error {
	if f.JSON() {
		return f.Success(r)
	}
	return writeRecipeDetail(f.Writer, r)
}

func writeRecipeTable(w io.Writer, recipes []recipe.Recipe) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFAV\tRATING\tADDED\tTAGS")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, favoriteMark(r), formatRating(r), formatAdded(r), strings.Join(r.Tags, ", "))
	}
	return tw.Flush()
}

func writeRecipeDetail(w io.Writer, r recipe.Recipe) error {
	title := r.Name
	if r.IsFavorite {
		title += " ★"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, r.Description)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	if r.Cuisine != "" {
		fmt.Fprintf(tw, "Cuisine:\t%s\n", r.Cuisine)
	}
	fmt.Fprintf(tw, "Difficulty:\t%s\n", r.Difficulty)
	fmt.Fprintf(tw, "Time:\t%d min prep, %d min cook\n", r.PrepTime, r.CookTime)
	fmt.Fprintf(tw, "Servings:\t%d\n", r.Servings)
	fmt.Fprintf(tw, "Rating:\t%s\n", formatRating(r))
	fmt.Fprintf(tw, "Added:\t%s\n", formatAdded(r))
	if len(r.Tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(r.Tags, ", "))
	}
	fmt.Fprintf(tw, "Image:\t%s\n", r.Image)
	if r.Source != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", r.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Instructions:")
	if len(r.InstructionSteps) > 0 {
		for i, step := range r.InstructionSteps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	} else {
		fmt.Fprintf(w, "  %s\n", r.Instructions)
	}

	if r.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Notes: %s\n", r.Notes)
	}
	return nil
}

func favoriteMark(r recipe.Recipe) string {
	if r.IsFavorite {
		return "★"
	}
	return ""
}

func formatRating(r recipe.Recipe) string {
	if r.TotalRatings == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f (%d)", r.RatingValue(), r.TotalRatings)
}

func formatAdded(r recipe.Recipe) string {
	if r.DateAdded == nil {
		return "-"
	}
	return r.DateAdded.Format("2006-01-02")
}
