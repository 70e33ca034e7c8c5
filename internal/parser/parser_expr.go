package parser

import (
	"stackcc/internal/ast"
	"stackcc/internal/errors"
	"stackcc/token"
)

// binaryRule maps an operator token to the node it builds. swap marks the
// greater-than forms, which are rewritten as less-than with swapped operands.
type binaryRule struct {
	op   ast.BinaryOperator
	swap bool
}

var equalityOps = map[token.Kind]binaryRule{
	token.EQ:     {op: ast.EQUAL},
	token.NOT_EQ: {op: ast.NOT_EQUAL},
}

var relationalOps = map[token.Kind]binaryRule{
	token.LT:    {op: ast.LESS_THAN},
	token.LT_EQ: {op: ast.LESS_OR_EQUAL},
	token.GT:    {op: ast.LESS_THAN, swap: true},
	token.GT_EQ: {op: ast.LESS_OR_EQUAL, swap: true},
}

var additiveOps = map[token.Kind]binaryRule{
	token.PLUS:  {op: ast.ADD},
	token.MINUS: {op: ast.SUB},
}

var multiplicativeOps = map[token.Kind]binaryRule{
	token.ASTERISK: {op: ast.MUL},
	token.SLASH:    {op: ast.DIV},
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssign()
}

// parseAssign is right-associative. The left side is not checked here; the
// generator rejects anything that is not a variable.
func (p *Parser) parseAssign() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	if !p.match(token.ASSIGN) {
		return left, nil
	}

	right, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Pos: left.NodePos(), Op: ast.ASSIGN, Left: left, Right: right}, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLevel(equalityOps, p.parseRelational)
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.parseBinaryLevel(relationalOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(multiplicativeOps, p.parseUnary)
}

// parseBinaryLevel parses one left-associative precedence level.
func (p *Parser) parseBinaryLevel(ops map[token.Kind]binaryRule, next func() (ast.Expr, error)) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}

	for {
		rule, ok := ops[p.peek().Kind]
		if !ok {
			return expr, nil
		}
		p.advance()

		right, err := next()
		if err != nil {
			return nil, err
		}

		if rule.swap {
			expr = &ast.BinaryExpr{Pos: expr.NodePos(), Op: rule.op, Left: right, Right: expr}
		} else {
			expr = &ast.BinaryExpr{Pos: expr.NodePos(), Op: rule.op, Left: expr, Right: right}
		}
	}
}

// parseUnary handles prefix signs. The operand is a primary, so "--x" is
// rejected. "-x" becomes "0 - x".
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.match(token.PLUS) {
		return p.parsePrimary()
	}
	if p.match(token.MINUS) {
		minus := p.previous()
		value, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{
			Pos:   minus.Position,
			Op:    ast.SUB,
			Left:  &ast.NumberLiteral{Pos: minus.Position, Value: 0},
			Right: value,
		}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	if p.match(token.LPAREN) {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "to close '('"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	if p.match(token.INT) {
		tok := p.previous()
		return &ast.NumberLiteral{Pos: tok.Position, Value: tok.Value}, nil
	}

	if p.match(token.IDENT) {
		tok := p.previous()
		return &ast.LocalVariable{
			Pos:    tok.Position,
			Name:   tok.Lexeme,
			Offset: p.symbols.Resolve(tok.Lexeme),
		}, nil
	}

	return nil, errors.ExpectedExpression(p.peek())
}
