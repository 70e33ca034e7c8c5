package semantic

import "stackcc/internal/ast"

// Symbol tracks how a variable is used across the whole program.
type Symbol struct {
	Name       string
	Reads      int
	Writes     int
	FirstRead  ast.Position
	FirstWrite ast.Position
}

// SymbolTable keeps symbols in order of first mention so that warnings come
// out deterministically.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
	}
}

func (st *SymbolTable) lookupOrDefine(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	symbol := &Symbol{Name: name}
	st.symbols[name] = symbol
	st.order = append(st.order, symbol)
	return symbol
}

func (st *SymbolTable) Read(name string, pos ast.Position) {
	symbol := st.lookupOrDefine(name)
	if symbol.Reads == 0 {
		symbol.FirstRead = pos
	}
	symbol.Reads++
}

func (st *SymbolTable) Write(name string, pos ast.Position) {
	symbol := st.lookupOrDefine(name)
	if symbol.Writes == 0 {
		symbol.FirstWrite = pos
	}
	symbol.Writes++
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	return st.symbols[name]
}

func (st *SymbolTable) All() []*Symbol {
	return st.order
}

// AssignedNames lists the variables written at least once.
func (st *SymbolTable) AssignedNames() []string {
	var names []string
	for _, symbol := range st.order {
		if symbol.Writes > 0 {
			names = append(names, symbol.Name)
		}
	}
	return names
}
