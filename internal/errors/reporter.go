package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"stackcc/token"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
)

// Kind classifies where a diagnostic was raised. Every Kind except KindLint
// aborts the compilation.
type Kind int

const (
	KindLex Kind = iota
	KindParse
	KindOverflow
	KindLint
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "LexError"
	case KindParse:
		return "ParseError"
	case KindOverflow:
		return "OverflowError"
	case KindLint:
		return "Warning"
	}
	return "Unknown"
}

// CompilerError is the single diagnostic type shared by every stage.
type CompilerError struct {
	Level       ErrorLevel
	Kind        Kind
	Code        string         // Error code like E0001
	Message     string         // Primary error message
	Position    token.Position // Location in source
	Length      int            // Length of the problematic region
	Suggestions []string
	Notes       []string
	HelpText    string
}

func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// IsFatal reports whether the diagnostic stops compilation.
func (e *CompilerError) IsFatal() bool {
	return e.Level == Error
}

// ErrorReporter renders diagnostics against the source they were raised for
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a diagnostic with Rust-like styling:
//
//	error[E0001]: unexpected character '@'
//	    --> main.c:1:10
//	    │
//	  1 │ return 1 @ 2;
//	    │          ^
func (er *ErrorReporter) FormatError(err *CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
		levelColor(string(err.Level)), err.Code, err.Message))

	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Position.Line > 0 && err.Position.Line <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)),
			dim("│"),
			er.lines[err.Position.Line-1]))

		marker := er.createMarker(err.Position.Column, err.Length, levelColor)
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	for i, suggestion := range err.Suggestions {
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		if i == 0 {
			result.WriteString(fmt.Sprintf("%s %s %s\n", indent, suggestionColor("help: try"), suggestion))
		} else {
			result.WriteString(fmt.Sprintf("%s %s %s\n", indent, suggestionColor("         "), suggestion))
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll formats a list of diagnostics in order
func (er *ErrorReporter) FormatAll(errs []*CompilerError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(er.FormatError(err))
	}
	return b.String()
}

func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	if level == Warning {
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return color.New(color.FgRed, color.Bold).SprintFunc()
}

func (er *ErrorReporter) createMarker(column, length int, markerColor func(...interface{}) string) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + markerColor(strings.Repeat("^", length))
}

func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
