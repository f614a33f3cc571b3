// Package symbols implements the runtime scope chain: flat name -> binding
// tables linked to their enclosing table.
package symbols

import "sort"

// Symbol is a binding held by a Table.
type Symbol[V any] struct {
	Name       string
	Value      V
	IsConstant bool // fixed at creation; enforced on every later write
}

// Table is one scope in a chain. Lookups resolve nearest-binding-wins by
// walking the outer links.
//
// A Table is not safe for concurrent use.
type Table[V any] struct {
	store map[string]Symbol[V]
	outer *Table[V]
}

// New returns an empty root table.
func New[V any]() *Table[V] {
	return &Table[V]{store: make(map[string]Symbol[V])}
}

// NewEnclosed returns an empty table whose lookups fall back to outer.
func NewEnclosed[V any](outer *Table[V]) *Table[V] {
	t := New[V]()
	t.outer = outer
	return t
}

// Outer returns the enclosing table, or nil for a root table.
func (t *Table[V]) Outer() *Table[V] {
	return t.outer
}

// Len is the number of local bindings.
func (t *Table[V]) Len() int {
	return len(t.store)
}

// Names returns the local binding names in sorted order.
func (t *Table[V]) Names() []string {
	names := make([]string, 0, len(t.store))
	for name := range t.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
