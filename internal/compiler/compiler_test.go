package compiler

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stackcc/internal/emu"
	"stackcc/internal/errors"
)

func run(t *testing.T, source string) int64 {
	t.Helper()
	value, _, err := Execute(source, Options{})
	require.NoError(t, err, "source: %s", source)
	return value
}

func TestReturnsLiteral(t *testing.T) {
	for _, v := range []int64{0, 1, 42, 255, 2147483647, 2147483648, 9223372036854775807} {
		source := "return " + strconv.FormatInt(v, 10) + ";"
		assert.Equal(t, v, run(t, source), source)
	}
}

func TestWideLiterals(t *testing.T) {
	assert.Equal(t, int64(10), run(t, "a = 10000000000; return a / 1000000000;"))
	assert.Equal(t, int64(4294967296), run(t, "return 4294967295 + 1;"))
}

func TestDriverSettingsDoNotChangeListing(t *testing.T) {
	source := "a = 3; return a * 2;"
	plain, err := Compile(source, Options{})
	require.NoError(t, err)

	driven, err := Compile(source, Options{DumpTokens: true, DumpAST: true, Run: true, Output: "out.s", Verbosity: 2})
	require.NoError(t, err)
	assert.Equal(t, plain.Assembly, driven.Assembly)
}

func TestArithmetic(t *testing.T) {
	cases := map[string]int64{
		"return 1+2*3;":                   7,
		"return (1+2)*3;":                 9,
		"return 10-2-3;":                  5,
		"return 100/10/5;":                2,
		"return 7/2;":                     3,
		"return -7/2;":                    -3,
		"return 7/-2;":                    -3,
		"return -3;":                      -3,
		"return +4;":                      4,
		"return -(2+3)*4;":                -20,
		"return 5+6*7;":                   47,
		"return 5*(9-6);":                 15,
		"return (3+5)/2;":                 4,
		"return 2*-3+10;":                 4,
		"return 1-(-1);":                  2,
		"return 0-9223372036854775807-1;": -9223372036854775807 - 1,
	}
	for source, want := range cases {
		assert.Equal(t, want, run(t, source), source)
	}
}

func TestComparisonsYieldZeroOrOne(t *testing.T) {
	cases := map[string]int64{
		"return 1<2;":               1,
		"return 2<1;":               0,
		"return 2<=2;":              1,
		"return 3<=2;":              0,
		"return 2>1;":               1,
		"return 1>2;":               0,
		"return 2>=2;":              1,
		"return 1>=2;":              0,
		"return 5==5;":              1,
		"return 5==6;":              0,
		"return 5!=6;":              1,
		"return 5!=5;":              0,
		"return -1<0;":              1,
		"return (1<2)+(3<4)+(5<4);": 2,
	}
	for source, want := range cases {
		assert.Equal(t, want, run(t, source), source)
	}
}

func TestComparisonAsStatement(t *testing.T) {
	assert.Equal(t, int64(1), run(t, "1 < 2;"))
}

func TestVariables(t *testing.T) {
	assert.Equal(t, int64(3), run(t, "a = 3; return a;"))
	assert.Equal(t, int64(6), run(t, "a = b = 3; return a + b;"))
	assert.Equal(t, int64(14), run(t, "foo = 4; bar = 10; return foo + bar;"))
	assert.Equal(t, int64(6), run(t, "a = 1; b = 2; c = 3; return a + b + c;"))
	assert.Equal(t, int64(5), run(t, "x = 2; x = x + 3; return x;"))
	assert.Equal(t, int64(4), run(t, "return a = 4;"))
}

func TestIfElse(t *testing.T) {
	assert.Equal(t, int64(2), run(t, "if (0) return 1; else return 2;"))
	assert.Equal(t, int64(1), run(t, "if (1) return 1; else return 2;"))
	assert.Equal(t, int64(3), run(t, "if (0) return 1; return 3;"))
	assert.Equal(t, int64(7), run(t, "a = 7; if (a - 7) return 1; return a;"))
	assert.Equal(t, int64(2), run(t, "if (1) if (0) return 1; else return 2; return 3;"))
	assert.Equal(t, int64(3), run(t, "if (0) if (1) return 1; else return 2; return 3;"))
}

func TestLoops(t *testing.T) {
	assert.Equal(t, int64(10), run(t, "i = 0; while (i < 10) i = i + 1; return i;"))
	assert.Equal(t, int64(5), run(t, "for (i = 0; i < 5; i = i + 1) ; return i;"))
	assert.Equal(t, int64(55), run(t, "s = 0; for (i = 1; i <= 10; i = i + 1) s = s + i; return s;"))
	assert.Equal(t, int64(3), run(t, "i = 0; for (;;) { i = i + 1; if (i == 3) return i; }"))
	assert.Equal(t, int64(0), run(t, "i = 0; while (0) i = 1; return i;"))
}

func TestBlocks(t *testing.T) {
	source := `
a = 0;
b = 0;
for (i = 0; i < 4; i = i + 1) {
	a = a + i;
	{ b = b + 2; }
}
return a * 10 + b;
`
	assert.Equal(t, int64(68), run(t, source))
}

func TestValueOfLastStatement(t *testing.T) {
	assert.Equal(t, int64(9), run(t, "a = 4; a + 5;"))
	assert.Equal(t, int64(0), run(t, ""))
}

func TestStackStaysBalanced(t *testing.T) {
	result, err := Compile("a = 1; b = a + 2; a < b; c = a * b / 2; if (c) c; else { a; b; }", Options{})
	require.NoError(t, err)

	var pushes, pops int
	for _, line := range strings.Split(result.Assembly, "\n") {
		switch {
		case strings.HasPrefix(line, "  push "):
			pushes++
		case strings.HasPrefix(line, "  pop "):
			pops++
		}
	}
	assert.Equal(t, pushes, pops)
}

func TestCompileIsDeterministic(t *testing.T) {
	source := "a = 1; while (a < 100) a = a * 2; if (a == 128) return 1; else return 0;"
	first, err := Compile(source, Options{})
	require.NoError(t, err)
	second, err := Compile(source, Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Assembly, second.Assembly)
}

func TestCompileResult(t *testing.T) {
	result, err := Compile("x = 1;\nreturn y;", Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Tokens)
	assert.Equal(t, 2, result.Program.Locals)
	assert.True(t, strings.HasPrefix(result.Assembly, ".intel_syntax noprefix\n.global main\nmain:\n"))

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, errors.WarningUnusedVariable, result.Warnings[0].Code)
	assert.Equal(t, errors.WarningUnassignedVariable, result.Warnings[1].Code)
}

func TestCommentsDoNotChangeBehaviour(t *testing.T) {
	source := "a = 2; for (i = 0; i < 3; i = i + 1) a = a * 2; return a;"

	plain, err := Compile(source, Options{})
	require.NoError(t, err)
	commented, err := Compile(source, Options{EmitComments: true})
	require.NoError(t, err)
	assert.NotEqual(t, plain.Assembly, commented.Assembly)

	value, _, err := Execute(source, Options{EmitComments: true})
	require.NoError(t, err)
	assert.Equal(t, int64(16), value)
}

func TestFatalErrors(t *testing.T) {
	cases := []struct {
		source string
		kind   errors.Kind
		code   string
	}{
		{"return 1 @ 2;", errors.KindLex, errors.ErrorUnexpectedCharacter},
		{"a ! b;", errors.KindLex, errors.ErrorMalformedNotEqual},
		{"return 99999999999999999999;", errors.KindOverflow, errors.ErrorIntegerOverflow},
		{"return (1;", errors.KindParse, errors.ErrorUnexpectedToken},
		{"return ;", errors.KindParse, errors.ErrorExpectedExpression},
		{"1 = 2;", errors.KindParse, errors.ErrorInvalidAssignment},
	}

	for _, tc := range cases {
		result, err := Compile(tc.source, Options{})
		assert.Nil(t, result, tc.source)

		var compilerErr *errors.CompilerError
		require.ErrorAs(t, err, &compilerErr, tc.source)
		assert.Equal(t, tc.kind, compilerErr.Kind, tc.source)
		assert.Equal(t, tc.code, compilerErr.Code, tc.source)
		assert.True(t, compilerErr.IsFatal())
	}
}

func TestRuntimeFaults(t *testing.T) {
	_, result, err := Execute("a = 0; return 1 / a;", Options{})
	assert.ErrorIs(t, err, emu.ErrDivideByZero)
	assert.NotNil(t, result, "compilation itself succeeded")

	_, _, err = Execute("for (;;) ;", Options{MaxSteps: 1000})
	assert.ErrorIs(t, err, emu.ErrStepLimit)
}
