package parser

import (
	"stackcc/internal/ast"
	"stackcc/token"
)

// Parser is a single-use recursive-descent parser. It reads the token
// sequence once with one token of look-ahead and stops at the first error.
type Parser struct {
	tokens  []token.Token
	current int
	symbols *SymbolTable
}

// NewParser expects tokens as produced by Scanner.ScanTokens, terminated by
// an EOF token.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		symbols: NewSymbolTable(),
	}
}

// Symbols exposes the table built during parsing.
func (p *Parser) Symbols() *SymbolTable {
	return p.symbols
}

func (p *Parser) ParseProgram() (*ast.Program, error) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	return &ast.Program{
		Statements: stmts,
		Locals:     p.symbols.Len(),
	}, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.LBRACE:
		return p.parseBlockStmt()
	case token.SEMICOLON:
		semi := p.advance()
		return &ast.BlockStmt{Pos: semi.Position}, nil
	}
	return p.parseExprStmt()
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	keyword := p.advance()

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "after return value"); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Pos: keyword.Position, Value: value}, nil
}

// parseIfStmt binds a trailing else to the innermost if by consuming it
// greedily.
func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	keyword := p.advance()

	cond, err := p.parseCondition("if")
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Pos: keyword.Position, Cond: cond, Then: then}
	if p.match(token.ELSE) {
		stmt.Else, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	keyword := p.advance()

	cond, err := p.parseCondition("while")
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Pos: keyword.Position, Cond: cond, Body: body}, nil
}

func (p *Parser) parseForStmt() (ast.Stmt, error) {
	keyword := p.advance()
	if _, err := p.consume(token.LPAREN, "after 'for'"); err != nil {
		return nil, err
	}

	stmt := &ast.ForStmt{Pos: keyword.Position}
	var err error

	if stmt.Init, err = p.parseOptionalExpr(token.SEMICOLON, "after for initializer"); err != nil {
		return nil, err
	}
	if stmt.Cond, err = p.parseOptionalExpr(token.SEMICOLON, "after for condition"); err != nil {
		return nil, err
	}
	if stmt.Update, err = p.parseOptionalExpr(token.RPAREN, "after for clauses"); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseStatement(); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) parseBlockStmt() (ast.Stmt, error) {
	brace := p.advance()

	block := &ast.BlockStmt{Pos: brace.Position}
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}

	if _, err := p.consume(token.RBRACE, "to close block"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "after expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseCondition parses the parenthesized condition of if and while.
func (p *Parser) parseCondition(keyword string) (ast.Expr, error) {
	if _, err := p.consume(token.LPAREN, "after '"+keyword+"'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "after "+keyword+" condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseOptionalExpr parses a for clause that may be empty, then its
// terminator. An empty clause yields a nil Expr.
func (p *Parser) parseOptionalExpr(terminator token.Kind, context string) (ast.Expr, error) {
	var expr ast.Expr
	if !p.check(terminator) {
		var err error
		if expr, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(terminator, context); err != nil {
		return nil, err
	}
	return expr, nil
}
