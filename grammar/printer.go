package grammar

import (
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		s.write(&b, 0)
	}
	return b.String()
}

func (s *Statement) String() string {
	var b strings.Builder
	s.writeInline(&b, 0)
	return b.String()
}

func (s *Statement) write(b *strings.Builder, level int) {
	b.WriteString(indent(level))
	s.writeInline(b, level)
	b.WriteString("\n")
}

// writeInline writes s from the current column without a trailing newline.
// Nested lines are indented relative to level.
func (s *Statement) writeInline(b *strings.Builder, level int) {
	switch {
	case s.Return != nil:
		b.WriteString("return " + s.Return.String() + ";")
	case s.If != nil:
		s.If.write(b, level)
	case s.While != nil:
		b.WriteString("while (" + s.While.Cond.String() + ")")
		writeBody(b, s.While.Body, level)
	case s.For != nil:
		b.WriteString(s.For.header())
		writeBody(b, s.For.Body, level)
	case s.Block != nil:
		s.Block.write(b, level)
	case s.Empty:
		b.WriteString(";")
	case s.Expr != nil:
		b.WriteString(s.Expr.String() + ";")
	}
}

// writeBody writes the statement controlled by if, else, while or for. A
// block opens on the same line; anything else goes on its own line one level
// deeper. It reports whether the body ended with a closing brace.
func writeBody(b *strings.Builder, body *Statement, level int) bool {
	switch {
	case body.Block != nil:
		b.WriteString(" ")
		body.Block.write(b, level)
		return true
	case body.Empty:
		b.WriteString(" ;")
		return false
	}
	b.WriteString("\n" + indent(level+1))
	body.writeInline(b, level+1)
	return false
}

func (i *IfStmt) write(b *strings.Builder, level int) {
	b.WriteString("if (" + i.Cond.String() + ")")
	braced := writeBody(b, i.Then, level)
	if i.Else == nil {
		return
	}

	if braced {
		b.WriteString(" else")
	} else {
		b.WriteString("\n" + indent(level) + "else")
	}
	if i.Else.If != nil {
		b.WriteString(" ")
		i.Else.If.write(b, level)
		return
	}
	writeBody(b, i.Else, level)
}

func (f *ForStmt) header() string {
	var b strings.Builder
	b.WriteString("for (")
	if f.Init != nil {
		b.WriteString(f.Init.String())
	}
	b.WriteString(";")
	if f.Cond != nil {
		b.WriteString(" " + f.Cond.String())
	}
	b.WriteString(";")
	if f.Update != nil {
		b.WriteString(" " + f.Update.String())
	}
	b.WriteString(")")
	return b.String()
}

func (bl *Block) write(b *strings.Builder, level int) {
	if len(bl.Statements) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for _, s := range bl.Statements {
		s.write(b, level+1)
	}
	b.WriteString(indent(level) + "}")
}

func (e *Expr) String() string {
	return e.Assign.String()
}

func (a *Assign) String() string {
	if a.Right == nil {
		return a.Left.String()
	}
	return a.Left.String() + " = " + a.Right.String()
}

func (e *Equality) String() string {
	var b strings.Builder
	b.WriteString(e.Left.String())
	for _, op := range e.Ops {
		b.WriteString(" " + op.Operator + " " + op.Right.String())
	}
	return b.String()
}

func (r *Relational) String() string {
	var b strings.Builder
	b.WriteString(r.Left.String())
	for _, op := range r.Ops {
		b.WriteString(" " + op.Operator + " " + op.Right.String())
	}
	return b.String()
}

func (a *Additive) String() string {
	var b strings.Builder
	b.WriteString(a.Left.String())
	for _, op := range a.Ops {
		b.WriteString(" " + op.Operator + " " + op.Right.String())
	}
	return b.String()
}

func (m *Multiplicative) String() string {
	var b strings.Builder
	b.WriteString(m.Left.String())
	for _, op := range m.Ops {
		b.WriteString(" " + op.Operator + " " + op.Right.String())
	}
	return b.String()
}

func (u *Unary) String() string {
	if u.Operator == nil {
		return u.Value.String()
	}
	return *u.Operator + u.Value.String()
}

func (p *Primary) String() string {
	switch {
	case p.Number != nil:
		return *p.Number
	case p.Ident != nil:
		return *p.Ident
	case p.Parens != nil:
		return "(" + p.Parens.String() + ")"
	}
	return ""
}
