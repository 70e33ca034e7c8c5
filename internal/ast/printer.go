package ast

import (
	"fmt"
	"strings"
)

// String dumps the forest, one top-level statement per line, as S-expressions.
func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
	return b.String()
}

func (n *NumberLiteral) String() string {
	return fmt.Sprintf("%d", n.Value)
}

func (v *LocalVariable) String() string {
	return fmt.Sprintf("(lvar %s %d)", v.Name, v.Offset)
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Left.String(), b.Right.String())
}

func (r *ReturnStmt) String() string {
	return fmt.Sprintf("(return %s)", r.Value.String())
}

func (i *IfStmt) String() string {
	if i.Else == nil {
		return fmt.Sprintf("(if %s %s)", i.Cond.String(), i.Then.String())
	}
	return fmt.Sprintf("(if %s %s %s)", i.Cond.String(), i.Then.String(), i.Else.String())
}

func (w *WhileStmt) String() string {
	return fmt.Sprintf("(while %s %s)", w.Cond.String(), w.Body.String())
}

func (f *ForStmt) String() string {
	return fmt.Sprintf("(for %s %s %s %s)",
		optional(f.Init), optional(f.Cond), optional(f.Update), f.Body.String())
}

func (b *BlockStmt) String() string {
	if len(b.Stmts) == 0 {
		return "(block)"
	}
	parts := make([]string, len(b.Stmts))
	for i, stmt := range b.Stmts {
		parts[i] = stmt.String()
	}
	return "(block " + strings.Join(parts, " ") + ")"
}

// optional renders an omitted for-clause as "_".
func optional(e Expr) string {
	if e == nil {
		return "_"
	}
	return e.String()
}
