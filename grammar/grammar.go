package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar mirrors the surface syntax exactly: parentheses, unary signs
// and '>' survive, unlike in the compiler's tree.

type Program struct {
	Pos        lexer.Position
	Statements []*Statement `@@*`
}

type Statement struct {
	Pos    lexer.Position
	Return *Expr      `  "return" @@ ";"`
	If     *IfStmt    `| @@`
	While  *WhileStmt `| @@`
	For    *ForStmt   `| @@`
	Block  *Block     `| @@`
	Empty  bool       `| @";"`
	Expr   *Expr      `| @@ ";"`
}

type IfStmt struct {
	Cond *Expr      `"if" "(" @@ ")"`
	Then *Statement `@@`
	Else *Statement `[ "else" @@ ]`
}

type WhileStmt struct {
	Cond *Expr      `"while" "(" @@ ")"`
	Body *Statement `@@`
}

type ForStmt struct {
	Init   *Expr      `"for" "(" [ @@ ] ";"`
	Cond   *Expr      `[ @@ ] ";"`
	Update *Expr      `[ @@ ] ")"`
	Body   *Statement `@@`
}

type Block struct {
	Statements []*Statement `"{" @@* "}"`
}

type Expr struct {
	Assign *Assign `@@`
}

type Assign struct {
	Left  *Equality `@@`
	Right *Assign   `[ "=" @@ ]`
}

type Equality struct {
	Left *Relational   `@@`
	Ops  []*EqualityOp `{ @@ }`
}

type EqualityOp struct {
	Operator string      `@("==" | "!=")`
	Right    *Relational `@@`
}

type Relational struct {
	Left *Additive       `@@`
	Ops  []*RelationalOp `{ @@ }`
}

type RelationalOp struct {
	Operator string    `@("<=" | ">=" | "<" | ">")`
	Right    *Additive `@@`
}

type Additive struct {
	Left *Multiplicative `@@`
	Ops  []*AdditiveOp   `{ @@ }`
}

type AdditiveOp struct {
	Operator string          `@("+" | "-")`
	Right    *Multiplicative `@@`
}

type Multiplicative struct {
	Left *Unary              `@@`
	Ops  []*MultiplicativeOp `{ @@ }`
}

type MultiplicativeOp struct {
	Operator string `@("*" | "/")`
	Right    *Unary `@@`
}

type Unary struct {
	Operator *string  `[ @("+" | "-") ]`
	Value    *Primary `@@`
}

type Primary struct {
	Number *string `  @Integer`
	Ident  *string `| @Ident`
	Parens *Expr   `| "(" @@ ")"`
}
