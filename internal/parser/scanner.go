package parser

import (
	"strconv"
	"unicode/utf8"

	"stackcc/internal/errors"
	"stackcc/token"
)

// Scanner turns source text into tokens. It stops at the first lexical error.
type Scanner struct {
	source      string
	tokens      []token.Token
	start       int
	current     int
	line        int
	startColumn int
	column      int
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// ScanTokens returns the full token sequence terminated by exactly one EOF
// token, or nil and the first error encountered.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startColumn = s.column
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, token.Token{
		Kind:     token.EOF,
		Position: token.Position{Line: s.line, Column: s.column, Offset: s.current},
	})
	return s.tokens, nil
}

func (s *Scanner) scanToken() error {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LPAREN)
	case ')':
		s.addToken(token.RPAREN)
	case '{':
		s.addToken(token.LBRACE)
	case '}':
		s.addToken(token.RBRACE)
	case ';':
		s.addToken(token.SEMICOLON)
	case '+':
		s.addToken(token.PLUS)
	case '-':
		s.addToken(token.MINUS)
	case '*':
		s.addToken(token.ASTERISK)
	case '/':
		s.addToken(token.SLASH)

	// Operators with a two-character variant
	case '=':
		s.scanEqualOperator()
	case '!':
		return s.scanBangOperator()
	case '<':
		s.scanLessOperator()
	case '>':
		s.scanGreaterOperator()

	case ' ', '\r', '\t', '\n', '\v', '\f':
		// Ignore whitespace

	default:
		return s.scanDefault(c)
	}
	return nil
}

func (s *Scanner) scanEqualOperator() {
	if s.matchNext('=') {
		s.addToken(token.EQ)
	} else {
		s.addToken(token.ASSIGN)
	}
}

func (s *Scanner) scanBangOperator() error {
	if s.matchNext('=') {
		s.addToken(token.NOT_EQ)
		return nil
	}
	var next rune
	if !s.isAtEnd() {
		next, _ = utf8.DecodeRuneInString(s.source[s.current:])
	}
	return errors.MalformedNotEqual(next, s.startPosition())
}

func (s *Scanner) scanLessOperator() {
	if s.matchNext('=') {
		s.addToken(token.LT_EQ)
	} else {
		s.addToken(token.LT)
	}
}

func (s *Scanner) scanGreaterOperator() {
	if s.matchNext('=') {
		s.addToken(token.GT_EQ)
	} else {
		s.addToken(token.GT)
	}
}

func (s *Scanner) scanDefault(c byte) error {
	switch {
	case isDigit(c):
		return s.scanNumber()
	case isAlpha(c):
		s.scanIdentifier()
		return nil
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.start:])
	return errors.UnexpectedCharacter(r, s.startPosition())
}

func (s *Scanner) scanIdentifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	s.addToken(token.LookupIdent(text))
}

func (s *Scanner) scanNumber() error {
	for isDigit(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return errors.IntegerOverflow(text, s.startPosition())
	}
	s.tokens = append(s.tokens, token.Token{
		Kind:     token.INT,
		Lexeme:   text,
		Value:    value,
		Position: s.startPosition(),
	})
	return nil
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) addToken(kind token.Kind) {
	s.tokens = append(s.tokens, token.Token{
		Kind:     kind,
		Lexeme:   s.source[s.start:s.current],
		Position: s.startPosition(),
	})
}

// startPosition is the position of the first character of the current token.
// Tokens never span lines, so the current line is also the start line.
func (s *Scanner) startPosition() token.Position {
	return token.Position{Line: s.line, Column: s.startColumn, Offset: s.start}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}
