package ast

type ReturnStmt struct {
	Pos   Position
	Value Expr
}

// IfStmt with a nil Else has no else branch.
type IfStmt struct {
	Pos  Position
	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	Pos  Position
	Cond Expr
	Body Stmt
}

// ForStmt clauses are nil when omitted in the source. A nil Cond loops until
// the body returns.
type ForStmt struct {
	Pos    Position
	Init   Expr
	Cond   Expr
	Update Expr
	Body   Stmt
}

// BlockStmt with no statements also represents the empty statement `;`.
type BlockStmt struct {
	Pos   Position
	Stmts []Stmt
}
