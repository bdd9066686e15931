package errors

import "fmt"

// Syntax error codes (SYN100-199)
const (
	// ErrEmptyInput indicates there was nothing to parse
	ErrEmptyInput ErrorCode = "SYN100"
	// ErrUnexpectedClose indicates a ')' without a matching '('
	ErrUnexpectedClose ErrorCode = "SYN101"
	// ErrUnclosedList indicates input ended inside a list
	ErrUnclosedList ErrorCode = "SYN102"
	// ErrTrailingInput indicates text after a complete expression
	ErrTrailingInput ErrorCode = "SYN103"
	// ErrEmptyList indicates "()"
	ErrEmptyList ErrorCode = "SYN104"
	// ErrNotAnOperator indicates a list head that does not name an operator
	ErrNotAnOperator ErrorCode = "SYN105"
	// ErrUnexpectedVariable indicates a ?pattern variable in plain expression text
	ErrUnexpectedVariable ErrorCode = "SYN106"
	// ErrInvalidVariable indicates a bare '?' with no name
	ErrInvalidVariable ErrorCode = "SYN107"
	// ErrInvalidNumber indicates a numeric-looking atom that is not an exact rational
	ErrInvalidNumber ErrorCode = "SYN108"
)

// NewEmptyInput creates a SYN100 error
func NewEmptyInput() *Diagnostic {
	return newError(
		ErrEmptyInput,
		"empty_input",
		CategorySyntax,
		SeverityError,
		"Expected an expression but the input is empty",
		Location{Line: 1, Column: 1},
	).WithExamples("(+ x 1)", "(sqrt (* x x))")
}

// NewUnexpectedClose creates a SYN101 error
func NewUnexpectedClose(loc Location) *Diagnostic {
	return newError(
		ErrUnexpectedClose,
		"unexpected_close",
		CategorySyntax,
		SeverityError,
		"Unexpected ')'",
		loc,
	).WithSuggestion("Remove the extra ')' or add the missing '('")
}

// NewUnclosedList creates a SYN102 error
func NewUnclosedList(loc Location) *Diagnostic {
	return newError(
		ErrUnclosedList,
		"unclosed_list",
		CategorySyntax,
		SeverityError,
		"Unclosed '(' - input ended before the matching ')'",
		loc,
	).WithExpected(")").WithActual("end of input")
}

// NewTrailingInput creates a SYN103 error
func NewTrailingInput(loc Location, found string) *Diagnostic {
	return newError(
		ErrTrailingInput,
		"trailing_input",
		CategorySyntax,
		SeverityError,
		fmt.Sprintf("Unexpected '%s' after a complete expression", found),
		loc,
	).WithSuggestion("Wrap multiple terms in an operator application, e.g. (+ a b)")
}

// NewEmptyList creates a SYN104 error
func NewEmptyList(loc Location) *Diagnostic {
	return newError(
		ErrEmptyList,
		"empty_list",
		CategorySyntax,
		SeverityError,
		"Empty application '()'",
		loc,
	).WithExpected("(operator operand...)")
}

// NewNotAnOperator creates a SYN105 error
func NewNotAnOperator(loc Location, head string) *Diagnostic {
	return newError(
		ErrNotAnOperator,
		"not_an_operator",
		CategorySyntax,
		SeverityError,
		fmt.Sprintf("'%s' is not an operator and cannot be applied", head),
		loc,
	).WithSuggestion("Run 'eggmath vocab' to list the available operators")
}

// NewUnexpectedVariable creates a SYN106 error
func NewUnexpectedVariable(loc Location, name string) *Diagnostic {
	return newError(
		ErrUnexpectedVariable,
		"unexpected_pattern_variable",
		CategorySyntax,
		SeverityError,
		fmt.Sprintf("Pattern variable '%s' is only allowed in rule patterns", name),
		loc,
	)
}

// NewInvalidVariable creates a SYN107 error
func NewInvalidVariable(loc Location) *Diagnostic {
	return newError(
		ErrInvalidVariable,
		"invalid_pattern_variable",
		CategorySyntax,
		SeverityError,
		"Pattern variable needs a name after '?'",
		loc,
	).WithExamples("?x", "?a")
}

// NewInvalidNumber creates a SYN108 error
func NewInvalidNumber(loc Location, text string) *Diagnostic {
	return newError(
		ErrInvalidNumber,
		"invalid_number",
		CategorySyntax,
		SeverityError,
		fmt.Sprintf("'%s' is not an exact rational number", text),
		loc,
	).WithExamples("3", "-1", "1/2", "0.25")
}
