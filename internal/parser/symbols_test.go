package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTableAssignsSlotsInOrder(t *testing.T) {
	st := NewSymbolTable()

	assert.Equal(t, 8, st.Resolve("a"))
	assert.Equal(t, 16, st.Resolve("b"))
	assert.Equal(t, 8, st.Resolve("a"))
	assert.Equal(t, 24, st.Resolve("c"))
	assert.Equal(t, 3, st.Len())
	assert.Equal(t, []string{"a", "b", "c"}, st.Names())
}

func TestSymbolTableLookup(t *testing.T) {
	st := NewSymbolTable()
	st.Resolve("x")

	offset, ok := st.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 8, offset)

	_, ok = st.Lookup("y")
	assert.False(t, ok)
	assert.Equal(t, 1, st.Len(), "lookup must not allocate")
}

func TestSymbolTableNamesIsACopy(t *testing.T) {
	st := NewSymbolTable()
	st.Resolve("x")

	names := st.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"x"}, st.Names())
}
