// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// Identifiers + literals
	IDENT // x, total, _tmp ...
	INT   // 1234567890

	// Keywords
	RETURN
	IF
	ELSE
	WHILE
	FOR

	// Operators
	PLUS
	MINUS
	ASTERISK
	SLASH
	ASSIGN
	EQ
	NOT_EQ
	LT
	LT_EQ
	GT
	GT_EQ

	// Delimiters
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
)

var kindNames = map[Kind]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	RETURN:    "return",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	FOR:       "for",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	ASSIGN:    "=",
	EQ:        "==",
	NOT_EQ:    "!=",
	LT:        "<",
	LT_EQ:     "<=",
	GT:        ">",
	GT_EQ:     ">=",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return k >= RETURN && k <= FOR
}

// IsOperator reports whether k is an arithmetic, comparison or assignment operator.
func (k Kind) IsOperator() bool {
	return k >= PLUS && k <= GT_EQ
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is immutable once produced by the scanner. Value is only meaningful
// for INT tokens.
type Token struct {
	Kind     Kind
	Lexeme   string
	Value    int64
	Position Position
}

func (t Token) String() string {
	switch t.Kind {
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Lexeme)
	case INT:
		return fmt.Sprintf("INT(%d)", t.Value)
	case EOF:
		return "EOF"
	}
	return fmt.Sprintf("%q", t.Kind.String())
}

var keywords = map[string]Kind{
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
}

func LookupIdent(ident string) Kind {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
