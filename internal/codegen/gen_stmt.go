package codegen

import (
	"fmt"

	"stackcc/internal/ast"
)

func (g *Generator) genStmt(stmt ast.Stmt) error {
	switch n := stmt.(type) {
	case *ast.ReturnStmt:
		if err := g.genExpr(n.Value); err != nil {
			return err
		}
		g.line("pop rax")
		g.epilogue()

	case *ast.IfStmt:
		return g.genIf(n)

	case *ast.WhileStmt:
		id := g.newLabel()
		g.label(beginLabel(id))
		if err := g.genCondition(n.Cond, endLabel(id)); err != nil {
			return err
		}
		if err := g.genStmt(n.Body); err != nil {
			return err
		}
		g.line("jmp %s", beginLabel(id))
		g.label(endLabel(id))

	case *ast.ForStmt:
		return g.genFor(n)

	case *ast.BlockStmt:
		for _, inner := range n.Stmts {
			if err := g.genStmt(inner); err != nil {
				return err
			}
		}

	case ast.Expr:
		return g.genDiscarded(n)

	default:
		return fmt.Errorf("codegen: unsupported statement %T", stmt)
	}
	return nil
}

func (g *Generator) genIf(n *ast.IfStmt) error {
	id := g.newLabel()

	if n.Else == nil {
		if err := g.genCondition(n.Cond, endLabel(id)); err != nil {
			return err
		}
		if err := g.genStmt(n.Then); err != nil {
			return err
		}
		g.label(endLabel(id))
		return nil
	}

	if err := g.genCondition(n.Cond, elseLabel(id)); err != nil {
		return err
	}
	if err := g.genStmt(n.Then); err != nil {
		return err
	}
	g.line("jmp %s", endLabel(id))
	g.label(elseLabel(id))
	if err := g.genStmt(n.Else); err != nil {
		return err
	}
	g.label(endLabel(id))
	return nil
}

func (g *Generator) genFor(n *ast.ForStmt) error {
	id := g.newLabel()

	if n.Init != nil {
		if err := g.genDiscarded(n.Init); err != nil {
			return err
		}
	}
	g.label(beginLabel(id))
	if n.Cond != nil {
		if err := g.genCondition(n.Cond, endLabel(id)); err != nil {
			return err
		}
	}
	if err := g.genStmt(n.Body); err != nil {
		return err
	}
	if n.Update != nil {
		if err := g.genDiscarded(n.Update); err != nil {
			return err
		}
	}
	g.line("jmp %s", beginLabel(id))
	g.label(endLabel(id))
	return nil
}

// genCondition evaluates cond and jumps to target when it is zero.
func (g *Generator) genCondition(cond ast.Expr, target string) error {
	if err := g.genExpr(cond); err != nil {
		return err
	}
	g.line("pop rax")
	g.line("cmp rax, 0")
	g.line("je %s", target)
	return nil
}

// genDiscarded evaluates an expression for its effect. The value is popped
// into rax, which is also what the final epilogue returns.
func (g *Generator) genDiscarded(expr ast.Expr) error {
	if err := g.genExpr(expr); err != nil {
		return err
	}
	g.line("pop rax")
	return nil
}

func beginLabel(id int) string { return fmt.Sprintf(".Lbegin%d", id) }
func elseLabel(id int) string  { return fmt.Sprintf(".Lelse%d", id) }
func endLabel(id int) string   { return fmt.Sprintf(".Lend%d", id) }
