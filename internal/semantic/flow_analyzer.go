package semantic

import (
	"stackcc/internal/ast"
	"stackcc/internal/errors"
)

// FlowAnalyzer reports statements that follow a return in the same statement
// list.
type FlowAnalyzer struct {
	analyzer *Analyzer
}

func NewFlowAnalyzer(analyzer *Analyzer) *FlowAnalyzer {
	return &FlowAnalyzer{analyzer: analyzer}
}

// AnalyzeStatements walks one statement list and reports whether control can
// fall off its end.
func (fa *FlowAnalyzer) AnalyzeStatements(stmts []ast.Stmt) bool {
	for i, stmt := range stmts {
		if !fa.analyzeStatement(stmt) {
			if i < len(stmts)-1 {
				// Only the first unreachable statement is reported.
				fa.analyzer.addCompilerError(errors.UnreachableCode(stmts[i+1].NodePos()))
			}
			return false
		}
	}
	return true
}

// analyzeStatement returns false when stmt always returns.
func (fa *FlowAnalyzer) analyzeStatement(stmt ast.Stmt) bool {
	switch node := stmt.(type) {
	case *ast.ReturnStmt:
		return false

	case *ast.BlockStmt:
		return fa.AnalyzeStatements(node.Stmts)

	case *ast.IfStmt:
		thenFalls := fa.analyzeStatement(node.Then)
		if node.Else == nil {
			return true
		}
		elseFalls := fa.analyzeStatement(node.Else)
		return thenFalls || elseFalls

	case *ast.WhileStmt:
		fa.analyzeStatement(node.Body)
		return true

	case *ast.ForStmt:
		fa.analyzeStatement(node.Body)
		return true
	}
	return true
}
