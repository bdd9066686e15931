// Package errors provides structured diagnostics for eggmath. Vocabulary
// assembly, s-expression parsing, rule corpus validation and configuration
// loading report problems as a Diagnostic carrying a stable code, so the CLI
// can render them for humans and the HTTP API can return them as JSON.
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode is a unique diagnostic code such as "VOC001" or "SYN003"
type ErrorCode string

// ErrorCategory groups codes by the subsystem that raised them
type ErrorCategory string

const (
	// CategoryVocabulary covers operator table assembly (VOC001-099)
	CategoryVocabulary ErrorCategory = "vocabulary"
	// CategorySyntax covers expression and pattern text (SYN100-199)
	CategorySyntax ErrorCategory = "syntax"
	// CategoryRule covers rewrite corpus assembly (RUL200-299)
	CategoryRule ErrorCategory = "rule"
	// CategoryConfig covers configuration validation (CFG300-399)
	CategoryConfig ErrorCategory = "config"
)

// ErrorSeverity indicates the severity level of a diagnostic
type ErrorSeverity string

const (
	// SeverityError prevents the operation from completing
	SeverityError ErrorSeverity = "error"
	// SeverityWarning flags a suspicious but usable input
	SeverityWarning ErrorSeverity = "warning"
)

// Location is a 1-indexed position in a piece of source text
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Diagnostic is a structured error with enough detail for both terminal
// output and machine consumption
type Diagnostic struct {
	// Code is the unique diagnostic code
	Code ErrorCode `json:"code"`
	// Type is a machine-readable identifier for the failure
	Type string `json:"type"`
	// Category is the subsystem that raised the diagnostic
	Category ErrorCategory `json:"category"`
	// Severity is the severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the primary message
	Message string `json:"message"`
	// Location points into Source when the diagnostic came from text
	Location Location `json:"location"`
	// Source names the text that was being processed (a rule name, "<input>")
	Source string `json:"source,omitempty"`
	// Snippet is the offending text, if any
	Snippet string `json:"snippet,omitempty"`
	// Expected describes what was expected (optional)
	Expected string `json:"expected,omitempty"`
	// Actual describes what was found (optional)
	Actual string `json:"actual,omitempty"`
	// Suggestion is a hint for fixing the problem (optional)
	Suggestion string `json:"suggestion,omitempty"`
	// Examples lists example fixes (optional)
	Examples []string `json:"examples,omitempty"`
	// Documentation links to the code's reference page
	Documentation string `json:"documentation,omitempty"`
	// Cause is an underlying diagnostic, e.g. the syntax error inside a rule
	Cause *Diagnostic `json:"cause,omitempty"`
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	return FormatCompact(d)
}

// Format returns a human-readable multi-line message
func (d *Diagnostic) Format() string {
	return FormatError(d)
}

// Unwrap exposes the nested cause to errors.Is/As
func (d *Diagnostic) Unwrap() error {
	if d.Cause == nil {
		return nil
	}
	return d.Cause
}

// ToJSON returns the diagnostic as indented JSON
func (d *Diagnostic) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithSource sets the name of the text being processed
func (d *Diagnostic) WithSource(source string) *Diagnostic {
	d.Source = source
	return d
}

// WithSnippet records the offending text
func (d *Diagnostic) WithSnippet(snippet string) *Diagnostic {
	d.Snippet = snippet
	return d
}

// WithExpected sets the expected value
func (d *Diagnostic) WithExpected(expected string) *Diagnostic {
	d.Expected = expected
	return d
}

// WithActual sets the actual value
func (d *Diagnostic) WithActual(actual string) *Diagnostic {
	d.Actual = actual
	return d
}

// WithSuggestion sets a suggestion for fixing the problem
func (d *Diagnostic) WithSuggestion(suggestion string) *Diagnostic {
	d.Suggestion = suggestion
	return d
}

// WithExamples sets example fixes
func (d *Diagnostic) WithExamples(examples ...string) *Diagnostic {
	d.Examples = examples
	return d
}

// WithCause attaches the diagnostic that triggered this one
func (d *Diagnostic) WithCause(cause *Diagnostic) *Diagnostic {
	d.Cause = cause
	return d
}

// ErrorList is a collection of diagnostics
type ErrorList []*Diagnostic

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatErrorList(el)
}

// HasErrors returns true if the list contains any error-severity entries
func (el ErrorList) HasErrors() bool {
	for _, d := range el {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns the list as an error, or nil when it holds no errors
func (el ErrorList) Err() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ToJSON returns all diagnostics as a JSON array
func (el ErrorList) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ErrorCount returns the number of diagnostics by severity
func (el ErrorList) ErrorCount() (errors, warnings int) {
	for _, d := range el {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return
}

// documentationURL returns the reference page for a code
func documentationURL(code ErrorCode) string {
	return fmt.Sprintf("https://github.com/conduit-lang/eggmath/blob/main/docs/errors.md#%s", code)
}

// newError creates a new Diagnostic with the given parameters
func newError(
	code ErrorCode,
	typ string,
	category ErrorCategory,
	severity ErrorSeverity,
	message string,
	loc Location,
) *Diagnostic {
	return &Diagnostic{
		Code:          code,
		Type:          typ,
		Category:      category,
		Severity:      severity,
		Message:       message,
		Location:      loc,
		Documentation: documentationURL(code),
	}
}
