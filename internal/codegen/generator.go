package codegen

import (
	"fmt"

	"stackcc/internal/ast"
)

// frameAlign is the stack alignment required at call boundaries by the
// System V ABI.
const frameAlign = 16

// Generator lowers a program to Intel-syntax x86-64 for a stack machine:
// every expression leaves exactly one 64-bit value on the machine stack.
type Generator struct {
	out    Emitter
	labels int

	// EmitComments adds a "# ..." line ahead of each top-level statement.
	EmitComments bool
}

func NewGenerator(out Emitter) *Generator {
	return &Generator{out: out}
}

// Generate is a convenience wrapper returning the listing as a string.
func Generate(program *ast.Program) (string, error) {
	var out TextEmitter
	if err := NewGenerator(&out).Generate(program); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Generate emits the whole program. On error the emitter may hold a partial
// listing, which callers should discard.
func (g *Generator) Generate(program *ast.Program) error {
	g.out.Emit(".intel_syntax noprefix")
	g.out.Emit(".global main")
	g.out.Emit("main:")
	g.prologue(program.Locals)

	for _, stmt := range program.Statements {
		if g.EmitComments {
			g.comment("%s", stmt)
		}
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}

	g.epilogue()
	return nil
}

// FrameSize is the number of bytes reserved for locals, rounded up to the
// call alignment.
func FrameSize(locals int) int {
	size := locals * ast.SlotSize
	return (size + frameAlign - 1) / frameAlign * frameAlign
}

func (g *Generator) line(format string, args ...any) {
	g.out.Emit("  " + fmt.Sprintf(format, args...))
}

func (g *Generator) label(name string) {
	g.out.Emit(name + ":")
}

func (g *Generator) comment(format string, args ...any) {
	g.line("# "+format, args...)
}

func (g *Generator) newLabel() int {
	g.labels++
	return g.labels
}

func (g *Generator) prologue(locals int) {
	g.line("push rbp")
	g.line("mov rbp, rsp")
	g.line("sub rsp, %d", FrameSize(locals))
}

func (g *Generator) epilogue() {
	g.line("mov rsp, rbp")
	g.line("pop rbp")
	g.line("ret")
}
