// Package vela embeds the interpreter in Go programs. Programs are AST
// documents (YAML or JSON); Go functions and values can be bound into the
// global scope and script values are converted back to Go.
//
//	in := vela.New()
//	in.Bind("double", func(x int) int { return x * 2 })
//	res, err := in.Eval(`- {kind: call, callee: {kind: var, name: double}, args: [21]}`)
package vela

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/funvibe/vela/internal/backend"
	"github.com/funvibe/vela/internal/config"
	"github.com/funvibe/vela/internal/evaluator"
	"github.com/funvibe/vela/internal/pipeline"
	"github.com/funvibe/vela/internal/token"
)

// ErrHostCall is the kind of runtime error raised when a bound Go function
// returns a non-nil error.
var ErrHostCall = errors.New("host function failed")

// Interpreter wraps a tree-walk backend and one global scope shared by
// every Eval, LoadFile and Call.
type Interpreter struct {
	backend    *backend.TreeWalkBackend
	root       *evaluator.Context
	marshaller *Marshaller
}

// Option configures an Interpreter.
type Option func(*backend.TreeWalkBackend)

// WithOutput redirects print.
func WithOutput(w io.Writer) Option {
	return func(b *backend.TreeWalkBackend) { b.Out = w }
}

// WithLogger receives call and instantiation debug records.
func WithLogger(l *slog.Logger) Option {
	return func(b *backend.TreeWalkBackend) { b.Logger = l }
}

// WithMaxDepth bounds evaluation nesting.
func WithMaxDepth(n int) Option {
	return func(b *backend.TreeWalkBackend) { b.MaxDepth = n }
}

// WithoutStdlib starts from an empty global scope.
func WithoutStdlib() Option {
	return func(b *backend.TreeWalkBackend) { b.Stdlib = false }
}

// New creates an interpreter with the standard builtins registered.
func New(opts ...Option) *Interpreter {
	b := backend.NewTreeWalk(config.Default(), nil, nil)
	for _, opt := range opts {
		opt(b)
	}
	return &Interpreter{
		backend:    b,
		root:       b.NewRoot(),
		marshaller: NewMarshaller(),
	}
}

// Bind registers a Go function as a constant builtin named name.
// Arguments are converted with the marshaller; a trailing error result is
// reported as a runtime error of kind ErrHostCall.
func (in *Interpreter) Bind(name string, fn interface{}) error {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fmt.Errorf("bind %s: expected a function, got %T", name, fn)
	}
	b, err := in.marshaller.funcToBuiltin(name, v)
	if err != nil {
		return err
	}
	in.root.Define(name, b, false)
	return nil
}

// Register binds a builtin written against the evaluator API directly.
func (in *Interpreter) Register(b *evaluator.Builtin) {
	in.root.Define(b.Name, b, false)
}

// Set binds a Go value as a mutable global variable.
func (in *Interpreter) Set(name string, val interface{}) error {
	v, err := in.marshaller.ToValue(val)
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	if !in.root.Scope.CanBeRewritten(name) {
		return fmt.Errorf("set %s: cannot assign to constant '%s'", name, name)
	}
	in.root.Define(name, v, true)
	return nil
}

// Get retrieves a global variable converted to Go.
func (in *Interpreter) Get(name string) (interface{}, error) {
	v, ok := in.root.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return in.marshaller.FromValue(v, nil)
}

// Call calls a script function (or bound builtin) by name.
func (in *Interpreter) Call(funcName string, args ...interface{}) (interface{}, error) {
	fn, ok := in.root.Lookup(funcName)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", funcName)
	}

	values := make([]evaluator.Value, len(args))
	for i, arg := range args {
		v, err := in.marshaller.ToValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = v
	}

	result, err := in.backend.NewEvaluator().CallValue(fn, values, token.NoPos, token.NoPos, in.root).Unwrap()
	if err != nil {
		return nil, err
	}
	return in.marshaller.FromValue(result, nil)
}

// Eval runs an AST document in the global scope and returns the value of
// its root node.
func (in *Interpreter) Eval(doc string) (interface{}, error) {
	ctx := pipeline.NewPipelineContext("<eval>", []byte(doc))
	return in.run(ctx)
}

// LoadFile decodes and runs an AST document file.
func (in *Interpreter) LoadFile(path string) error {
	_, err := in.run(pipeline.NewPipelineContext(path, nil))
	return err
}

func (in *Interpreter) run(ctx *pipeline.PipelineContext) (interface{}, error) {
	ctx.Root = in.root
	ctx = pipeline.Frontend().With(backend.NewExecutionProcessor(in.backend)).Run(ctx)

	if ctx.HasErrors() {
		errs := make([]error, len(ctx.Errors))
		for i, e := range ctx.Errors {
			errs[i] = e
		}
		return nil, errors.Join(errs...)
	}
	return in.marshaller.FromValue(ctx.Result, nil)
}
