package errors

import "fmt"

// Rule corpus error codes (RUL200-299)
const (
	// ErrDuplicateGroup indicates a rule group registered twice
	ErrDuplicateGroup ErrorCode = "RUL200"
	// ErrDuplicateRule indicates two rules sharing a name
	ErrDuplicateRule ErrorCode = "RUL201"
	// ErrUnboundVariable indicates a right-hand side variable the left side never binds
	ErrUnboundVariable ErrorCode = "RUL202"
	// ErrInvalidPattern indicates a pattern that failed to parse
	ErrInvalidPattern ErrorCode = "RUL203"
	// ErrUnknownGroup indicates a selection naming a group that does not exist
	ErrUnknownGroup ErrorCode = "RUL204"
	// ErrBareVariablePattern indicates a left-hand side that is only a variable
	ErrBareVariablePattern ErrorCode = "RUL205"
)

// NewDuplicateGroup creates a RUL200 error
func NewDuplicateGroup(group string) *Diagnostic {
	return newError(
		ErrDuplicateGroup,
		"duplicate_group",
		CategoryRule,
		SeverityError,
		fmt.Sprintf("Rule group '%s' was already registered", group),
		Location{},
	).WithSource(group)
}

// NewDuplicateRule creates a RUL201 error
func NewDuplicateRule(rule, group, previous string) *Diagnostic {
	return newError(
		ErrDuplicateRule,
		"duplicate_rule",
		CategoryRule,
		SeverityError,
		fmt.Sprintf("Rule '%s' in group '%s' was already defined in group '%s'", rule, group, previous),
		Location{},
	).WithSource(rule)
}

// NewUnboundVariable creates a RUL202 error
func NewUnboundVariable(rule, variable string) *Diagnostic {
	return newError(
		ErrUnboundVariable,
		"unbound_variable",
		CategoryRule,
		SeverityError,
		fmt.Sprintf("Right-hand side uses '%s' which the left-hand side never binds", variable),
		Location{},
	).WithSource(rule).
		WithSuggestion("Every variable on the right must appear on the left")
}

// NewInvalidPattern creates a RUL203 error wrapping the syntax diagnostic
func NewInvalidPattern(rule, side string, cause *Diagnostic) *Diagnostic {
	return newError(
		ErrInvalidPattern,
		"invalid_pattern",
		CategoryRule,
		SeverityError,
		fmt.Sprintf("Cannot parse %s pattern", side),
		Location{},
	).WithSource(rule).WithCause(cause)
}

// NewUnknownGroup creates a RUL204 error
func NewUnknownGroup(group string) *Diagnostic {
	return newError(
		ErrUnknownGroup,
		"unknown_group",
		CategoryRule,
		SeverityError,
		fmt.Sprintf("No rule group named '%s'", group),
		Location{},
	).WithSource(group).
		WithSuggestion("Run 'eggmath rules' to list groups")
}

// NewBareVariablePattern creates a RUL205 error
func NewBareVariablePattern(rule string) *Diagnostic {
	return newError(
		ErrBareVariablePattern,
		"bare_variable_pattern",
		CategoryRule,
		SeverityError,
		"Left-hand side is a lone variable and would match every class",
		Location{},
	).WithSource(rule)
}
