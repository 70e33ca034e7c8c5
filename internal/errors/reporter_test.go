package errors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stackcc/token"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := "a = 1;\nreturn a @ 2;\n"

	reporter := NewErrorReporter("test.c", source)

	err := UnexpectedCharacter('@', token.Position{Line: 2, Column: 10, Offset: 16})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUnexpectedCharacter+"]")
	assert.Contains(t, formatted, "unexpected character: '@'")
	assert.Contains(t, formatted, "test.c:2:10")
	assert.Contains(t, formatted, "return a @ 2;")
	assert.Contains(t, formatted, "         ^\n")
}

func TestCompilerErrorImplementsError(t *testing.T) {
	var err error = IntegerOverflow("99999999999999999999", token.Position{Line: 1, Column: 8})

	var compilerErr *CompilerError
	require.ErrorAs(t, err, &compilerErr)
	assert.Equal(t, KindOverflow, compilerErr.Kind)
	assert.True(t, compilerErr.IsFatal())
	assert.Equal(t, 20, compilerErr.Length)
	assert.Equal(t, "1:8: error[E0003]: integer literal 99999999999999999999 overflows int64", err.Error())
}

func TestMalformedNotEqual(t *testing.T) {
	pos := token.Position{Line: 1, Column: 3}

	err := MalformedNotEqual('x', pos)
	assert.Equal(t, KindLex, err.Kind)
	assert.Contains(t, err.Message, "'x'")
	assert.Len(t, err.Suggestions, 1)
	assert.Equal(t, 2, err.Length)

	err = MalformedNotEqual(0, pos)
	assert.Contains(t, err.Message, "end of input")
	assert.Equal(t, 1, err.Length, "only the '!' exists to underline")
}

func TestUnexpectedTokenDescribesToken(t *testing.T) {
	err := UnexpectedToken(token.Token{Kind: token.EOF}, "';'")
	assert.Equal(t, "unexpected token end of input, expected ';'", err.Message)

	err = UnexpectedToken(token.Token{Kind: token.IDENT, Lexeme: "foo"}, "'('")
	assert.Equal(t, "unexpected token 'foo', expected '('", err.Message)
	assert.Equal(t, 3, err.Length)

	err = ExpectedExpression(token.Token{Kind: token.RPAREN, Lexeme: ")"})
	assert.Equal(t, ErrorExpectedExpression, err.Code)
	assert.Contains(t, err.Message, "')'")
}

func TestUnassignedVariableSuggestions(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}

	err := UnassignedVariable("cout", pos, []string{"count", "total"})
	assert.False(t, err.IsFatal())
	assert.Equal(t, KindLint, err.Kind)
	assert.Equal(t, []string{"did you mean 'count'?"}, err.Suggestions)

	err = UnassignedVariable("zz", pos, []string{"count"})
	assert.Empty(t, err.Suggestions)
}

func TestWarningFormatting(t *testing.T) {
	reporter := NewErrorReporter("w.c", "return 1; x = 2;")
	formatted := reporter.FormatAll([]*CompilerError{
		UnreachableCode(token.Position{Line: 1, Column: 11}),
	})
	assert.Contains(t, formatted, "warning[E0802]: unreachable statement")
	assert.Contains(t, formatted, "note:")
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Lexer", GetErrorCategory(ErrorIntegerOverflow))
	assert.Equal(t, "Parser", GetErrorCategory(ErrorInvalidAssignment))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnusedVariable))
	assert.True(t, IsWarning(WarningUnreachableCode))
	assert.False(t, IsWarning(ErrorUnexpectedToken))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("abc", "abc"))
	assert.Equal(t, 1, levenshteinDistance("count", "cout"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
}
