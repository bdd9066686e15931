package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable diagnostic for terminal output
func FormatError(d *Diagnostic) string {
	var b strings.Builder

	icon := severityIcon(d.Severity)

	source := d.Source
	if source == "" {
		source = "<input>"
	}

	fmt.Fprintf(&b, "%s %s in %s [%s]\n", icon, categoryDisplayName(d.Category), source, d.Code)

	if d.Location.Line > 0 {
		fmt.Fprintf(&b, "Line %d, Column %d:\n", d.Location.Line, d.Location.Column)
	}

	if d.Snippet != "" {
		fmt.Fprintf(&b, "  %s\n", d.Snippet)
		if d.Location.Column > 0 && !strings.Contains(d.Snippet, "\n") {
			fmt.Fprintf(&b, "  %s^ %s\n", strings.Repeat(" ", d.Location.Column-1), d.Message)
		} else {
			fmt.Fprintf(&b, "  %s\n", d.Message)
		}
	} else {
		fmt.Fprintf(&b, "  %s\n", d.Message)
	}

	if d.Expected != "" || d.Actual != "" {
		b.WriteString("\n")
		if d.Expected != "" {
			fmt.Fprintf(&b, "  Expected: %s\n", d.Expected)
		}
		if d.Actual != "" {
			fmt.Fprintf(&b, "  Actual:   %s\n", d.Actual)
		}
	}

	if d.Cause != nil {
		fmt.Fprintf(&b, "\n  Caused by: %s\n", FormatCompact(d.Cause))
	}

	if d.Suggestion != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", d.Suggestion)
	}

	if len(d.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		for i, example := range d.Examples {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, example)
		}
	}

	if d.Documentation != "" {
		fmt.Fprintf(&b, "\nLearn more: %s\n", d.Documentation)
	}

	return b.String()
}

// FormatErrorList returns a formatted string of all diagnostics
func FormatErrorList(list ErrorList) string {
	if len(list) == 0 {
		return "no errors"
	}

	var b strings.Builder

	errCount, warnCount := list.ErrorCount()
	fmt.Fprintf(&b, "Failed with %d error(s), %d warning(s)\n\n", errCount, warnCount)

	for i, d := range list {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
		b.WriteString(d.Format())
	}

	return b.String()
}

// FormatCompact returns a compact one-line format
func FormatCompact(d *Diagnostic) string {
	source := d.Source
	if source == "" {
		source = "<input>"
	}
	if d.Location.Line == 0 {
		return fmt.Sprintf("%s: %s: %s [%s]", source, d.Severity, d.Message, d.Code)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]",
		source, d.Location.Line, d.Location.Column,
		d.Severity, d.Message, d.Code)
}

func severityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️ "
	default:
		return "❓"
	}
}

func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryVocabulary:
		return "Vocabulary Error"
	case CategorySyntax:
		return "Syntax Error"
	case CategoryRule:
		return "Rule Error"
	case CategoryConfig:
		return "Configuration Error"
	default:
		return "Error"
	}
}
