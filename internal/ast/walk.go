package ast

// Walk traverses the tree rooted at node in source order, calling fn for each
// node. If fn returns false, Walk skips that node's children.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *ReturnStmt:
		Walk(n.Value, fn)

	case *IfStmt:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, fn)
		}
		if n.Cond != nil {
			Walk(n.Cond, fn)
		}
		if n.Update != nil {
			Walk(n.Update, fn)
		}
		Walk(n.Body, fn)

	case *BlockStmt:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}
	}
}
