package grammar

import (
	"github.com/alecthomas/participle/v2"

	stackparser "stackcc/internal/parser"
)

var programParser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse reads source into the surface grammar. It does not check keywords
// used as names; Format runs the compiler's parser first for that.
func Parse(filename, source string) (*Program, error) {
	return programParser.ParseString(filename, source)
}

// Format returns source in canonical layout. Programs the compiler rejects are
// reported with the compiler's diagnostic and left untouched.
func Format(source string) (string, error) {
	if _, err := stackparser.ParseSource(source); err != nil {
		return "", err
	}

	program, err := Parse("", source)
	if err != nil {
		return "", err
	}
	return program.String(), nil
}
