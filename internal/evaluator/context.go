package evaluator

import (
	"github.com/funvibe/vela/internal/symbols"
	"github.com/funvibe/vela/internal/token"
)

// Context is an execution context: a scope plus the links needed for
// closures and tracebacks. Parent is the lexical parent. Caller and EntryPos
// record who entered this context and where, and are only read when
// rendering a traceback.
type Context struct {
	Name     string
	Scope    *symbols.Table[Value]
	Parent   *Context
	Caller   *Context
	EntryPos token.Position
}

// NewRootContext returns a context with an empty table and no parent.
func NewRootContext(name string) *Context {
	return &Context{Name: name, Scope: symbols.New[Value]()}
}

// NewChildContext returns a context whose scope encloses parent's.
func NewChildContext(name string, parent *Context) *Context {
	return &Context{
		Name:   name,
		Scope:  symbols.NewEnclosed(parent.Scope),
		Parent: parent,
	}
}

// Define binds name in this context's own scope.
func (c *Context) Define(name string, v Value, mutable bool) {
	c.Scope.Set(name, v, mutable)
}

// Lookup resolves name through the scope chain.
func (c *Context) Lookup(name string) (Value, bool) {
	return c.Scope.Get(name)
}
