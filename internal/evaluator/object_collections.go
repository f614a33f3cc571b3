package evaluator

import (
	"fmt"
	"strings"
)

type listStore struct {
	items []Value
}

// List is an ordered sequence of values. Copies share element storage, so
// mutation through one copy (append, pop, extend) is visible through all.
type List struct {
	meta
	store *listStore
}

func NewList(items []Value) *List {
	return &List{store: &listStore{items: items}}
}

func (l *List) Kind() Kind { return ListKind }

func (l *List) Inspect() string {
	var out strings.Builder
	out.WriteString("[")
	for i, el := range l.store.items {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

func (l *List) Truthy() bool { return len(l.store.items) > 0 }

func (l *List) Copy() Value {
	c := *l
	return &c
}

func (l *List) Len() int { return len(l.store.items) }

// Elements returns the live element slice. Callers must not retain it across
// mutations of the list.
func (l *List) Elements() []Value { return l.store.items }

// Snapshot returns a copy of the element slice.
func (l *List) Snapshot() []Value {
	out := make([]Value, len(l.store.items))
	copy(out, l.store.items)
	return out
}

// Append adds v to the end of the shared storage.
func (l *List) Append(v Value) {
	l.store.items = append(l.store.items, v)
}

// Extend appends every element of other.
func (l *List) Extend(other *List) {
	l.store.items = append(l.store.items, other.Snapshot()...)
}

// At returns the element at index. Negative indices count from the end.
func (l *List) At(index int64) (Value, error) {
	i, err := l.resolve(index)
	if err != nil {
		return nil, err
	}
	return l.store.items[i], nil
}

// RemoveAt removes and returns the element at index from the shared storage.
func (l *List) RemoveAt(index int64) (Value, error) {
	i, err := l.resolve(index)
	if err != nil {
		return nil, err
	}
	v := l.store.items[i]
	l.store.items = append(l.store.items[:i], l.store.items[i+1:]...)
	return v, nil
}

func (l *List) resolve(index int64) (int, error) {
	n := int64(len(l.store.items))
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, n)
	}
	return int(i), nil
}

func (l *List) Binary(op BinaryOp, right Value) (Value, error) {
	switch op {
	case OpAdd:
		items := append(l.Snapshot(), right)
		return NewList(items), nil
	case OpMul:
		if r, ok := right.(*List); ok {
			return NewList(append(l.Snapshot(), r.store.items...)), nil
		}
	case OpSub:
		if idx, ok := listIndex(right); ok {
			i, err := l.resolve(idx)
			if err != nil {
				return nil, err
			}
			items := l.Snapshot()
			return NewList(append(items[:i], items[i+1:]...)), nil
		}
	case OpDiv:
		if idx, ok := listIndex(right); ok {
			el, err := l.At(idx)
			if err != nil {
				return nil, err
			}
			return el.Copy(), nil
		}
	}
	return sharedBinary(op, l, right)
}

func listIndex(v Value) (int64, bool) {
	n, ok := v.(*Number)
	if !ok || n.IsFloat {
		return 0, false
	}
	return n.Int, true
}
