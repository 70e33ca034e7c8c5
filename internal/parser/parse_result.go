package parser

import (
	"stackcc/internal/ast"
	"stackcc/token"
)

// ParseResult keeps the intermediate artifacts of a parse for tooling that
// needs more than the tree (token dumps, semantic highlighting).
type ParseResult struct {
	Tokens  []token.Token
	Program *ast.Program
	Symbols *SymbolTable
}

// Parse runs the scanner and the parser. On failure the partial result is
// discarded and only the first error is returned.
func Parse(source string) (*ParseResult, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	program, err := parser.ParseProgram()
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		Tokens:  tokens,
		Program: program,
		Symbols: parser.Symbols(),
	}, nil
}
