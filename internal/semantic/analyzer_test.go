package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stackcc/internal/errors"
	"stackcc/internal/parser"
)

func analyze(t *testing.T, source string) []*errors.CompilerError {
	t.Helper()
	program, err := parser.ParseSource(source)
	require.NoError(t, err)
	return NewAnalyzer().Analyze(program)
}

func codes(warnings []*errors.CompilerError) []string {
	result := make([]string, len(warnings))
	for i, w := range warnings {
		result[i] = w.Code
	}
	return result
}

func TestCleanProgramHasNoWarnings(t *testing.T) {
	sources := []string{
		"return 42;",
		"a = 3; return a;",
		"a = b = 3; return a + b;",
		"for (i = 0; i < 5; i = i + 1) ; return i;",
		"if (1) return 1; else return 2;",
		"x = 0; while (x < 3) x = x + 1; return x;",
	}
	for _, source := range sources {
		assert.Empty(t, analyze(t, source), source)
	}
}

func TestAllWarningsAreWarnings(t *testing.T) {
	warnings := analyze(t, "a = 1; return b; c = 2;")
	require.NotEmpty(t, warnings)
	for _, w := range warnings {
		assert.Equal(t, errors.Warning, w.Level)
		assert.Equal(t, errors.KindLint, w.Kind)
		assert.False(t, w.IsFatal())
	}
}

func TestUnusedVariable(t *testing.T) {
	warnings := analyze(t, "x = 1;\nreturn 2;")
	require.Len(t, warnings, 1)
	assert.Equal(t, errors.WarningUnusedVariable, warnings[0].Code)
	assert.Equal(t, "variable 'x' is assigned but never used", warnings[0].Message)
	assert.Equal(t, 1, warnings[0].Position.Line)
	assert.Equal(t, 1, warnings[0].Position.Column)
}

func TestSelfReferenceCountsAsRead(t *testing.T) {
	assert.Empty(t, analyze(t, "x = 1; x = x + 1; return x;"))
}

func TestUnassignedVariableSuggestsSimilarName(t *testing.T) {
	warnings := analyze(t, "count = 1; return coutn;")
	assert.Equal(t, []string{errors.WarningUnusedVariable, errors.WarningUnassignedVariable}, codes(warnings))

	unassigned := warnings[1]
	assert.Equal(t, "variable 'coutn' is never assigned", unassigned.Message)
	assert.Equal(t, []string{"did you mean 'count'?"}, unassigned.Suggestions)
	assert.Equal(t, 19, unassigned.Position.Column)
}

func TestUnassignedVariableWithoutCandidates(t *testing.T) {
	warnings := analyze(t, "return y;")
	require.Len(t, warnings, 1)
	assert.Equal(t, errors.WarningUnassignedVariable, warnings[0].Code)
	assert.Empty(t, warnings[0].Suggestions)
}

func TestUnreachableAfterReturn(t *testing.T) {
	warnings := analyze(t, "return 1;\nreturn 2;\nreturn 3;")
	require.Len(t, warnings, 1, "only the first unreachable statement is reported")
	assert.Equal(t, errors.WarningUnreachableCode, warnings[0].Code)
	assert.Equal(t, 2, warnings[0].Position.Line)
}

func TestUnreachableInsideBlockAndAfterIfElse(t *testing.T) {
	warnings := analyze(t, "{ return 1; 2; }")
	assert.Equal(t, []string{errors.WarningUnreachableCode}, codes(warnings))

	warnings = analyze(t, "if (1) return 1; else { return 2; }\n3;")
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Position.Line)
}

func TestReachableAfterPartialReturn(t *testing.T) {
	assert.Empty(t, analyze(t, "if (1) return 1; return 2;"))
	assert.Empty(t, analyze(t, "while (1) return 1; return 2;"))
	assert.Empty(t, analyze(t, "for (;;) { return 1; } return 2;"))
}

func TestAnalyzerIsReusable(t *testing.T) {
	analyzer := NewAnalyzer()

	first, err := parser.ParseSource("x = 1;")
	require.NoError(t, err)
	second, err := parser.ParseSource("return 0;")
	require.NoError(t, err)

	assert.Len(t, analyzer.Analyze(first), 1)
	assert.Empty(t, analyzer.Analyze(second))
}
