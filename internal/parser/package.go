package parser

import (
	"stackcc/internal/ast"
	"stackcc/token"
)

// Tokenize runs the scanner alone.
func Tokenize(source string) ([]token.Token, error) {
	return NewScanner(source).ScanTokens()
}

// ParseSource scans and parses source into a program.
func ParseSource(source string) (*ast.Program, error) {
	result, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return result.Program, nil
}
