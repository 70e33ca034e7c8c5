package ast

import "stackcc/token"

type Position = token.Position

type NodeType int

const (
	NUMBER_LITERAL NodeType = iota
	LOCAL_VARIABLE
	BINARY_EXPR
	RETURN_STMT
	IF_STMT
	WHILE_STMT
	FOR_STMT
	BLOCK_STMT
)

var nodeTypeNames = [...]string{
	NUMBER_LITERAL: "NumberLiteral",
	LOCAL_VARIABLE: "LocalVariable",
	BINARY_EXPR:    "BinaryExpr",
	RETURN_STMT:    "ReturnStmt",
	IF_STMT:        "IfStmt",
	WHILE_STMT:     "WhileStmt",
	FOR_STMT:       "ForStmt",
	BLOCK_STMT:     "BlockStmt",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "Unknown"
}

type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string
}

// Expr nodes leave exactly one value on the evaluation stack when generated.
// Every Expr is also a Stmt: an expression statement is the tree itself.
type Expr interface {
	Stmt
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// Program is the forest produced by one parse.
type Program struct {
	Statements []Stmt
	// Locals is the number of distinct variables, used to size the frame.
	Locals int
}

func (n *NumberLiteral) NodePos() Position { return n.Pos }
func (*NumberLiteral) NodeType() NodeType  { return NUMBER_LITERAL }

func (v *LocalVariable) NodePos() Position { return v.Pos }
func (*LocalVariable) NodeType() NodeType  { return LOCAL_VARIABLE }

func (b *BinaryExpr) NodePos() Position { return b.Pos }
func (*BinaryExpr) NodeType() NodeType  { return BINARY_EXPR }

func (r *ReturnStmt) NodePos() Position { return r.Pos }
func (*ReturnStmt) NodeType() NodeType  { return RETURN_STMT }

func (i *IfStmt) NodePos() Position { return i.Pos }
func (*IfStmt) NodeType() NodeType  { return IF_STMT }

func (w *WhileStmt) NodePos() Position { return w.Pos }
func (*WhileStmt) NodeType() NodeType  { return WHILE_STMT }

func (f *ForStmt) NodePos() Position { return f.Pos }
func (*ForStmt) NodeType() NodeType  { return FOR_STMT }

func (b *BlockStmt) NodePos() Position { return b.Pos }
func (*BlockStmt) NodeType() NodeType  { return BLOCK_STMT }

func (*NumberLiteral) exprNode() {}
func (*LocalVariable) exprNode() {}
func (*BinaryExpr) exprNode()    {}

func (*NumberLiteral) stmtNode() {}
func (*LocalVariable) stmtNode() {}
func (*BinaryExpr) stmtNode()    {}
func (*ReturnStmt) stmtNode()    {}
func (*IfStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()     {}
func (*ForStmt) stmtNode()       {}
func (*BlockStmt) stmtNode()     {}

// SlotSize is the width in bytes of one local-variable frame slot.
const SlotSize = 8
