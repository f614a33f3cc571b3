package symbols

// Get resolves name through the chain. The boolean is false when the name is
// unbound everywhere, which is distinct from being bound to a null value.
func (t *Table[V]) Get(name string) (V, bool) {
	if sym, ok := t.Lookup(name); ok {
		return sym.Value, true
	}
	var zero V
	return zero, false
}

// GetLocal resolves name in this table only.
func (t *Table[V]) GetLocal(name string) (V, bool) {
	sym, ok := t.store[name]
	return sym.Value, ok
}

// Lookup returns the nearest symbol bound to name.
func (t *Table[V]) Lookup(name string) (Symbol[V], bool) {
	for s := t; s != nil; s = s.outer {
		if sym, ok := s.store[name]; ok {
			return sym, true
		}
	}
	return Symbol[V]{}, false
}

// Set binds name in this table, replacing any local binding. Enclosing
// tables are never written.
func (t *Table[V]) Set(name string, value V, mutable bool) {
	t.store[name] = Symbol[V]{Name: name, Value: value, IsConstant: !mutable}
}

// Present reports whether name is bound here or in any enclosing table.
func (t *Table[V]) Present(name string) bool {
	return t.Owner(name) != nil
}

// PresentLocal reports whether name is bound in this table.
func (t *Table[V]) PresentLocal(name string) bool {
	_, ok := t.store[name]
	return ok
}

// Owner returns the nearest table that binds name, or nil.
func (t *Table[V]) Owner(name string) *Table[V] {
	for s := t; s != nil; s = s.outer {
		if _, ok := s.store[name]; ok {
			return s
		}
	}
	return nil
}

// CanBeRewritten reports the mutability of the nearest binding of name.
// Names that are unbound everywhere can always be written.
func (t *Table[V]) CanBeRewritten(name string) bool {
	sym, ok := t.Lookup(name)
	if !ok {
		return true
	}
	return !sym.IsConstant
}

// Update writes value into the table that owns name, keeping its
// mutability. It reports false if name is unbound. Constness is the caller's
// check.
func (t *Table[V]) Update(name string, value V) bool {
	owner := t.Owner(name)
	if owner == nil {
		return false
	}
	sym := owner.store[name]
	sym.Value = value
	owner.store[name] = sym
	return true
}

// Remove deletes name from this table only.
func (t *Table[V]) Remove(name string) {
	delete(t.store, name)
}

// Delete removes name from the table that owns it and reports whether a
// binding was found.
func (t *Table[V]) Delete(name string) bool {
	owner := t.Owner(name)
	if owner == nil {
		return false
	}
	delete(owner.store, name)
	return true
}

// Clear wipes this table and every enclosing table. It is meant for
// interpreter teardown.
func (t *Table[V]) Clear() {
	for s := t; s != nil; s = s.outer {
		clear(s.store)
	}
}
