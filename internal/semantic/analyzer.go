package semantic

import (
	"stackcc/internal/ast"
	"stackcc/internal/errors"
)

// Analyzer lints a parsed program. It only produces warnings; a program that
// parsed is always handed to the generator regardless of what is found here.
type Analyzer struct {
	errors  []*errors.CompilerError
	symbols *SymbolTable
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns the variable warnings, ordered by first mention, followed by
// the reachability warnings.
func (a *Analyzer) Analyze(program *ast.Program) []*errors.CompilerError {
	a.errors = nil
	a.symbols = NewSymbolTable()

	for _, stmt := range program.Statements {
		a.analyzeStatement(stmt)
	}
	a.checkVariables()

	flow := NewFlowAnalyzer(a)
	flow.AnalyzeStatements(program.Statements)

	return a.errors
}

func (a *Analyzer) addCompilerError(err *errors.CompilerError) {
	a.errors = append(a.errors, err)
}

func (a *Analyzer) analyzeStatement(stmt ast.Stmt) {
	switch node := stmt.(type) {
	case *ast.ReturnStmt:
		a.analyzeExpression(node.Value)

	case *ast.IfStmt:
		a.analyzeExpression(node.Cond)
		a.analyzeStatement(node.Then)
		if node.Else != nil {
			a.analyzeStatement(node.Else)
		}

	case *ast.WhileStmt:
		a.analyzeExpression(node.Cond)
		a.analyzeStatement(node.Body)

	case *ast.ForStmt:
		a.analyzeExpression(node.Init)
		a.analyzeExpression(node.Cond)
		a.analyzeExpression(node.Update)
		a.analyzeStatement(node.Body)

	case *ast.BlockStmt:
		for _, inner := range node.Stmts {
			a.analyzeStatement(inner)
		}

	case ast.Expr:
		a.analyzeExpression(node)
	}
}

// analyzeExpression records reads and writes. The direct target of '=' is a
// write; every other variable mention is a read.
func (a *Analyzer) analyzeExpression(expr ast.Expr) {
	if expr == nil {
		return
	}

	switch node := expr.(type) {
	case *ast.LocalVariable:
		a.symbols.Read(node.Name, node.Pos)

	case *ast.BinaryExpr:
		if target, ok := node.Left.(*ast.LocalVariable); ok && node.Op == ast.ASSIGN {
			a.analyzeExpression(node.Right)
			a.symbols.Write(target.Name, target.Pos)
			return
		}
		a.analyzeExpression(node.Left)
		a.analyzeExpression(node.Right)
	}
}

func (a *Analyzer) checkVariables() {
	assigned := a.symbols.AssignedNames()

	for _, sym := range a.symbols.All() {
		switch {
		case sym.Reads == 0:
			a.addCompilerError(errors.UnusedVariable(sym.Name, sym.FirstWrite))
		case sym.Writes == 0:
			a.addCompilerError(errors.UnassignedVariable(sym.Name, sym.FirstRead, assigned))
		}
	}
}
