package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/symbols"
	"github.com/funvibe/vela/internal/token"
	"github.com/google/uuid"
)

// StructDefinition is an unexecuted struct declaration. It is never bound
// under an assignment; assignments instantiate it.
type StructDefinition struct {
	meta
	Name    string
	Body    ast.Node
	Closure *Context // defining context
}

func (d *StructDefinition) Kind() Kind      { return StructDefinitionKind }
func (d *StructDefinition) Inspect() string { return fmt.Sprintf("<struct %s>", d.Name) }
func (d *StructDefinition) Truthy() bool    { return true }

func (d *StructDefinition) Copy() Value {
	c := *d
	return &c
}

func (d *StructDefinition) Binary(op BinaryOp, right Value) (Value, error) {
	return sharedBinary(op, d, right)
}

// Instantiate runs the member block in a fresh child of the defining
// context and returns the resulting StructInstance. caller and start are
// recorded for tracebacks.
func (d *StructDefinition) Instantiate(e *Evaluator, start, end token.Position, caller *Context) Result {
	inst := &StructInstance{ID: uuid.New(), Definition: d}
	inst.Env = &Context{
		Name:     d.Name,
		Scope:    symbols.NewEnclosed(d.Closure.Scope),
		Parent:   d.Closure,
		Caller:   caller,
		EntryPos: start,
	}
	e.Logger.Debug("instantiate",
		slog.String("struct", d.Name),
		slog.String("id", inst.ID.String()),
		slog.String("pos", start.String()))

	res := e.Eval(d.Body, inst.Env)
	if res.IsError() {
		return res
	}
	if res.ShouldReturn() {
		return Fail(newRuntimeError(ErrUnconsumedSignal, res.Span.Start, res.Span.End, inst.Env,
			"'%s' outside of a function or loop in struct '%s'", res.Signal, d.Name))
	}
	inst.SetPos(start, end)
	inst.SetContext(caller)
	return Ok(inst)
}

// StructInstance is a struct whose member block has been executed into its
// own context.
type StructInstance struct {
	meta
	ID         uuid.UUID
	Definition *StructDefinition
	Env        *Context
}

func (s *StructInstance) Kind() Kind { return StructInstanceKind }

func (s *StructInstance) Inspect() string {
	return fmt.Sprintf("<struct %s instance %s>", s.Definition.Name, s.ID.String()[:8])
}

func (s *StructInstance) Truthy() bool { return true }

func (s *StructInstance) Copy() Value {
	c := *s
	return &c
}

func (s *StructInstance) Binary(op BinaryOp, right Value) (Value, error) {
	return sharedBinary(op, s, right)
}

// Member returns the member bound in the instance's own scope.
func (s *StructInstance) Member(name string) (Value, bool) {
	return s.Env.Scope.GetLocal(name)
}
