package errors

import "fmt"

// Vocabulary error codes (VOC001-099)
const (
	// ErrDuplicateName indicates two operator tags share a canonical name
	ErrDuplicateName ErrorCode = "VOC001"
	// ErrInvalidName indicates a canonical name that cannot appear as a token
	ErrInvalidName ErrorCode = "VOC002"
)

// NewDuplicateName creates a VOC001 error
func NewDuplicateName(name, first, second string) *Diagnostic {
	return newError(
		ErrDuplicateName,
		"duplicate_name",
		CategoryVocabulary,
		SeverityError,
		fmt.Sprintf("Canonical name '%s' is used by both %s and %s", name, first, second),
		Location{},
	).WithSnippet(name).
		WithSuggestion("Every operator needs its own name so rule text resolves to exactly one tag")
}

// NewInvalidName creates a VOC002 error
func NewInvalidName(name, owner, reason string) *Diagnostic {
	return newError(
		ErrInvalidName,
		"invalid_name",
		CategoryVocabulary,
		SeverityError,
		fmt.Sprintf("Canonical name %q for %s is not usable: %s", name, owner, reason),
		Location{},
	).WithSnippet(name)
}
