package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/eggmath/internal/errors"
)

// Level is the severity of a message
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Message is a terminal message with optional suggestions and follow-up
// commands
//
// Example output:
//
//	❌ UNKNOWN RULE GROUP: counting-rules
//	   No rule group named 'counting-rules'
//
//	   Did you mean: counting?
//
//	   → See all groups: eggmath rules
type Message struct {
	Level        Level
	Context      string
	Problem      string
	Detail       string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// Format renders the message
func (m Message) Format() string {
	var b strings.Builder

	var head, body *color.Color
	var symbol string
	switch m.Level {
	case LevelWarning:
		head, body, symbol = color.New(color.FgYellow, color.Bold), color.New(color.FgYellow), "⚠️"
	case LevelInfo:
		head, body, symbol = color.New(color.FgCyan, color.Bold), color.New(color.FgCyan), "ℹ️"
	default:
		head, body, symbol = color.New(color.FgRed, color.Bold), color.New(color.FgRed), "❌"
	}
	hint := color.New(color.FgYellow)
	cmd := color.New(color.FgCyan)
	if m.NoColor {
		for _, c := range []*color.Color{head, body, hint, cmd} {
			c.DisableColor()
		}
	}

	if m.Context != "" {
		head.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(m.Context))
		body.Fprintf(&b, "   %s\n", m.Problem)
	} else {
		head.Fprintf(&b, "%s %s\n", symbol, m.Problem)
	}

	if m.Detail != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(strings.TrimRight(m.Detail, "\n"), "\n") {
			fmt.Fprintf(&b, "   %s\n", line)
		}
	}

	if len(m.Suggestions) > 0 {
		b.WriteString("\n")
		hint.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(m.Suggestions, ", "))
	}

	if len(m.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, c := range m.HelpCommands {
			cmd.Fprintf(&b, "   → %s\n", c)
		}
	}
	return b.String()
}

// Write renders the message to w
func (m Message) Write(w io.Writer) {
	fmt.Fprint(w, m.Format())
}

// Success renders a green check line
func Success(w io.Writer, message string, noColor bool) {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	green.Fprintf(w, "✓ %s\n", message)
}

// DescribeError turns any error into a Message. Diagnostics keep their
// code, caret snippet and suggestion; unknown rule groups get spelling
// suggestions from groups.
func DescribeError(err error, groups []string, noColor bool) Message {
	var list errors.ErrorList
	if stderrors.As(err, &list) && len(list) > 0 {
		if len(list) == 1 {
			return describeDiagnostic(list[0], groups, noColor)
		}
		return Message{
			Level:   LevelError,
			Context: string(list[0].Category) + " errors",
			Problem: fmt.Sprintf("%d problems found", len(list)),
			Detail:  errors.FormatErrorList(list),
			NoColor: noColor,
		}
	}

	var d *errors.Diagnostic
	if stderrors.As(err, &d) {
		return describeDiagnostic(d, groups, noColor)
	}

	return Message{Level: LevelError, Problem: err.Error(), NoColor: noColor}
}

func describeDiagnostic(d *errors.Diagnostic, groups []string, noColor bool) Message {
	m := Message{
		Level:   LevelError,
		Context: fmt.Sprintf("%s error [%s]", d.Category, d.Code),
		Problem: d.Message,
		NoColor: noColor,
	}

	switch d.Category {
	case errors.CategorySyntax:
		m.Detail = snippetWithCaret(d)
		m.HelpCommands = []string{"List operators: eggmath vocab"}
	case errors.CategoryRule:
		if d.Code == errors.ErrUnknownGroup {
			m.Suggestions = FindSimilar(d.Source, groups, nil)
		}
		m.HelpCommands = []string{"See all groups: eggmath rules"}
	case errors.CategoryConfig:
		m.HelpCommands = []string{"Check eggmath.yml or EGGMATH_* environment variables"}
	}

	if d.Suggestion != "" {
		if m.Detail != "" {
			m.Detail += "\n"
		}
		m.Detail += d.Suggestion
	}
	return m
}

func snippetWithCaret(d *errors.Diagnostic) string {
	if d.Snippet == "" || d.Location.Column < 1 {
		return ""
	}
	return fmt.Sprintf("%d | %s\n%s^", d.Location.Line, d.Snippet,
		strings.Repeat(" ", len(fmt.Sprintf("%d | ", d.Location.Line))+d.Location.Column-1))
}
