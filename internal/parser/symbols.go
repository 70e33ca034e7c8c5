package parser

import "stackcc/internal/ast"

// SymbolTable maps variable names to frame offsets. Offsets are assigned on
// first mention, in order, as positive multiples of ast.SlotSize, and never
// change afterwards.
type SymbolTable struct {
	offsets map[string]int
	names   []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		offsets: make(map[string]int),
	}
}

// Resolve returns the offset of name, allocating the next slot if name has
// not been seen before.
func (st *SymbolTable) Resolve(name string) int {
	if offset, ok := st.offsets[name]; ok {
		return offset
	}
	st.names = append(st.names, name)
	offset := len(st.names) * ast.SlotSize
	st.offsets[name] = offset
	return offset
}

func (st *SymbolTable) Lookup(name string) (int, bool) {
	offset, ok := st.offsets[name]
	return offset, ok
}

// Len is the number of distinct variables.
func (st *SymbolTable) Len() int {
	return len(st.names)
}

// Names lists variables in order of first appearance.
func (st *SymbolTable) Names() []string {
	names := make([]string, len(st.names))
	copy(names, st.names)
	return names
}
