package parser

import (
	"fmt"

	"stackcc/internal/errors"
	"stackcc/token"
)

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of the given kind or fails with a parse
// error. context, when set, is appended to the expectation, e.g. "after 'if'".
func (p *Parser) consume(kind token.Kind, context string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	expected := fmt.Sprintf("'%s'", kind)
	if context != "" {
		expected += " " + context
	}
	return token.Token{}, errors.UnexpectedToken(p.peek(), expected)
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}
