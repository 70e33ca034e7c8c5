package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Keywords are matched as identifiers by value.
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},

		{Name: "Integer", Pattern: `[0-9]+`, Action: nil},

		// Two-character operators first.
		{Name: "Operator", Pattern: `(==|!=|<=|>=|[-+*/=<>])`, Action: nil},

		{Name: "Punctuation", Pattern: `[(){};]`, Action: nil},

		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
