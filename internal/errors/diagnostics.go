package errors

import (
	"fmt"
	"sort"

	"stackcc/token"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	err CompilerError
}

func newDiagnostic(level ErrorLevel, kind Kind, code, message string, pos token.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    level,
			Kind:     kind,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewError creates a fatal diagnostic builder
func NewError(kind Kind, code, message string, pos token.Position) *DiagnosticBuilder {
	return newDiagnostic(Error, kind, code, message, pos)
}

// NewWarning creates a non-fatal diagnostic builder
func NewWarning(code, message string, pos token.Position) *DiagnosticBuilder {
	return newDiagnostic(Warning, KindLint, code, message, pos)
}

func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, message)
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() *CompilerError {
	err := b.err
	return &err
}

// Lexer errors

func UnexpectedCharacter(c rune, pos token.Position) *CompilerError {
	return NewError(KindLex, ErrorUnexpectedCharacter, fmt.Sprintf("unexpected character: %q", c), pos).
		Build()
}

// MalformedNotEqual reports a '!' that is not followed by '='. next is 0 at
// end of input.
func MalformedNotEqual(next rune, pos token.Position) *CompilerError {
	message, length := "unexpected end of input after '!'", 1
	if next != 0 {
		message, length = fmt.Sprintf("unexpected character after '!': %q", next), 2
	}
	return NewError(KindLex, ErrorMalformedNotEqual, message, pos).
		WithLength(length).
		WithNote("there is no logical negation operator; '!' only appears in '!='").
		WithSuggestion("use '!=' to compare for inequality").
		Build()
}

func IntegerOverflow(literal string, pos token.Position) *CompilerError {
	return NewError(KindOverflow, ErrorIntegerOverflow, fmt.Sprintf("integer literal %s overflows int64", literal), pos).
		WithLength(len(literal)).
		WithNote("integer literals must be at most 9223372036854775807").
		Build()
}

// Parser errors

func UnexpectedToken(found token.Token, expected string) *CompilerError {
	return NewError(KindParse, ErrorUnexpectedToken,
		fmt.Sprintf("unexpected token %s, expected %s", describe(found), expected), found.Position).
		WithLength(len(found.Lexeme)).
		Build()
}

func ExpectedExpression(found token.Token) *CompilerError {
	return NewError(KindParse, ErrorExpectedExpression,
		fmt.Sprintf("unexpected token %s, expected a number, a variable or '('", describe(found)), found.Position).
		WithLength(len(found.Lexeme)).
		Build()
}

// InvalidAssignment is raised by the generator when the left operand of '='
// does not reduce to a variable.
func InvalidAssignment(target string, pos token.Position) *CompilerError {
	return NewError(KindParse, ErrorInvalidAssignment,
		fmt.Sprintf("cannot assign to %s", target), pos).
		WithHelp("only variables can appear on the left of '='").
		Build()
}

// Warnings

func UnusedVariable(name string, pos token.Position) *CompilerError {
	return NewWarning(WarningUnusedVariable, fmt.Sprintf("variable '%s' is assigned but never used", name), pos).
		WithLength(len(name)).
		Build()
}

func UnassignedVariable(name string, pos token.Position, candidates []string) *CompilerError {
	builder := NewWarning(WarningUnassignedVariable, fmt.Sprintf("variable '%s' is never assigned", name), pos).
		WithLength(len(name)).
		WithNote("unassigned variables read whatever the stack slot holds")

	similar := findSimilarNames(name, candidates)
	switch len(similar) {
	case 0:
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		for _, s := range similar {
			builder = builder.WithSuggestion(fmt.Sprintf("'%s'", s))
		}
	}

	return builder.Build()
}

func UnreachableCode(pos token.Position) *CompilerError {
	return NewWarning(WarningUnreachableCode, "unreachable statement", pos).
		WithNote("any code following a return statement is unreachable").
		Build()
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.INT:
		return fmt.Sprintf("'%s'", tok.Lexeme)
	}
	return fmt.Sprintf("'%s'", tok.Kind)
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 {
			similar = append(similar, candidate)
		}
	}

	sort.Strings(similar)
	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
