package codegen

import (
	"fmt"
	"math"

	"stackcc/internal/ast"
	"stackcc/internal/errors"
)

func (g *Generator) genExpr(expr ast.Expr) error {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		// push only encodes a sign-extended 32-bit immediate.
		if n.Value < math.MinInt32 || n.Value > math.MaxInt32 {
			g.line("mov rax, %d", n.Value)
			g.line("push rax")
			break
		}
		g.line("push %d", n.Value)

	case *ast.LocalVariable:
		g.genLval(n)
		g.line("pop rax")
		g.line("mov rax, [rax]")
		g.line("push rax")

	case *ast.BinaryExpr:
		if n.Op == ast.ASSIGN {
			return g.genAssign(n)
		}
		return g.genBinary(n)

	default:
		return fmt.Errorf("codegen: unsupported expression %T", expr)
	}
	return nil
}

// genLval pushes the address of a local.
func (g *Generator) genLval(v *ast.LocalVariable) {
	g.line("mov rax, rbp")
	g.line("sub rax, %d", v.Offset)
	g.line("push rax")
}

func (g *Generator) genAssign(n *ast.BinaryExpr) error {
	target, ok := n.Left.(*ast.LocalVariable)
	if !ok {
		return errors.InvalidAssignment(describeTarget(n.Left), n.Left.NodePos())
	}

	g.genLval(target)
	if err := g.genExpr(n.Right); err != nil {
		return err
	}
	g.line("pop rdi")
	g.line("pop rax")
	g.line("mov [rax], rdi")
	g.line("push rdi")
	return nil
}

// setInstructions maps comparisons to the setcc that materializes them.
var setInstructions = map[ast.BinaryOperator]string{
	ast.EQUAL:         "sete",
	ast.NOT_EQUAL:     "setne",
	ast.LESS_THAN:     "setl",
	ast.LESS_OR_EQUAL: "setle",
}

func (g *Generator) genBinary(n *ast.BinaryExpr) error {
	if err := g.genExpr(n.Left); err != nil {
		return err
	}
	if err := g.genExpr(n.Right); err != nil {
		return err
	}
	g.line("pop rdi")
	g.line("pop rax")

	switch n.Op {
	case ast.ADD:
		g.line("add rax, rdi")
	case ast.SUB:
		g.line("sub rax, rdi")
	case ast.MUL:
		g.line("imul rax, rdi")
	case ast.DIV:
		g.line("cqo")
		g.line("idiv rdi")
	default:
		set, ok := setInstructions[n.Op]
		if !ok {
			return fmt.Errorf("codegen: unsupported operator %s", n.Op)
		}
		g.line("cmp rax, rdi")
		g.line("%s al", set)
		g.line("movzb rax, al")
	}

	g.line("push rax")
	return nil
}

func describeTarget(expr ast.Expr) string {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return fmt.Sprintf("the literal %d", n.Value)
	case *ast.BinaryExpr:
		return fmt.Sprintf("the result of '%s'", n.Op)
	}
	return expr.String()
}
