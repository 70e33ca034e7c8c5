package ast

type BinaryOperator int

const (
	ADD BinaryOperator = iota
	SUB
	MUL
	DIV
	EQUAL
	NOT_EQUAL
	LESS_THAN
	LESS_OR_EQUAL
	ASSIGN
)

var binaryOperatorSymbols = [...]string{
	ADD:           "+",
	SUB:           "-",
	MUL:           "*",
	DIV:           "/",
	EQUAL:         "==",
	NOT_EQUAL:     "!=",
	LESS_THAN:     "<",
	LESS_OR_EQUAL: "<=",
	ASSIGN:        "=",
}

func (op BinaryOperator) String() string {
	if int(op) < len(binaryOperatorSymbols) {
		return binaryOperatorSymbols[op]
	}
	return "?"
}

// IsComparison reports whether the operator produces a 0/1 result.
func (op BinaryOperator) IsComparison() bool {
	return op >= EQUAL && op <= LESS_OR_EQUAL
}

type NumberLiteral struct {
	Pos   Position
	Value int64
}

// LocalVariable is a resolved reference; Offset is the positive displacement
// below the frame base and is shared by every mention of Name.
type LocalVariable struct {
	Pos    Position
	Name   string
	Offset int
}

// BinaryExpr covers arithmetic, comparison and assignment. Greater-than forms
// never appear here: the parser rewrites them into LESS_THAN/LESS_OR_EQUAL
// with swapped operands.
type BinaryExpr struct {
	Pos   Position
	Op    BinaryOperator
	Left  Expr
	Right Expr
}
