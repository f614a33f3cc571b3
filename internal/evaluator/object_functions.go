package evaluator

import (
	"fmt"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/token"
)

// Function is a user-defined closure.
type Function struct {
	meta
	Name       string // empty for anonymous functions
	Params     []string
	Body       ast.Node
	Closure    *Context // defining context
	AutoReturn bool
}

func (f *Function) Kind() Kind { return FunctionKind }

func (f *Function) Inspect() string {
	return fmt.Sprintf("<function %s>", f.DisplayName())
}

func (f *Function) Truthy() bool { return true }

func (f *Function) Copy() Value {
	c := *f
	return &c
}

func (f *Function) Binary(op BinaryOp, right Value) (Value, error) {
	return sharedBinary(op, f, right)
}

// DisplayName is the name used in tracebacks.
func (f *Function) DisplayName() string {
	if f.Name == "" {
		return "<anonymous>"
	}
	return f.Name
}

// NativeFunc implements a builtin. Arguments have already been arity-checked.
type NativeFunc func(in *Invocation) Result

// Builtin is a function implemented by the host.
type Builtin struct {
	meta
	Name   string
	Params []string
	Fn     NativeFunc
}

// NewBuiltin creates a builtin taking exactly len(params) arguments.
func NewBuiltin(name string, params []string, fn NativeFunc) *Builtin {
	return &Builtin{Name: name, Params: params, Fn: fn}
}

func (b *Builtin) Kind() Kind { return BuiltinKind }

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("<built-in function %s>", b.Name)
}

func (b *Builtin) Truthy() bool { return true }

func (b *Builtin) Copy() Value {
	c := *b
	return &c
}

func (b *Builtin) Binary(op BinaryOp, right Value) (Value, error) {
	return sharedBinary(op, b, right)
}

// Invocation is what a NativeFunc receives. Context is the fresh execution
// context of the call; arguments are bound there under their parameter names.
type Invocation struct {
	Evaluator *Evaluator
	Context   *Context
	Args      []Value
	Start     token.Position
	End       token.Position
}

// Arg returns the i-th argument.
func (in *Invocation) Arg(i int) Value {
	return in.Args[i]
}

// Ok wraps v, stamped with the call span.
func (in *Invocation) Ok(v Value) Result {
	v.SetPos(in.Start, in.End)
	v.SetContext(in.Context)
	return Ok(v)
}

// Fail builds a runtime error of the given kind at the call span.
func (in *Invocation) Fail(kind error, format string, a ...interface{}) Result {
	return Fail(newRuntimeError(kind, in.Start, in.End, in.Context, format, a...))
}
