package evaluator

import (
	"github.com/funvibe/vela/internal/config"
	"github.com/funvibe/vela/internal/token"
)

// Kind identifies the runtime kind of a Value.
type Kind uint8

const (
	NumberKind Kind = iota
	StringKind
	ListKind
	FunctionKind
	BuiltinKind
	StructDefinitionKind
	StructInstanceKind
	NullKind
)

var kindNames = [...]string{
	NumberKind:           config.NumberTypeName,
	StringKind:           config.StringTypeName,
	ListKind:             config.ListTypeName,
	FunctionKind:         config.FunctionTypeName,
	BuiltinKind:          config.BuiltinTypeName,
	StructDefinitionKind: config.StructDefinitionTypeName,
	StructInstanceKind:   config.StructInstanceTypeName,
	NullKind:             config.NullTypeName,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Value is a runtime value. Every value carries the span it was produced at
// and the context that owns it, both used for error reporting.
type Value interface {
	Kind() Kind
	Inspect() string
	Truthy() bool
	// Copy returns a shallow copy: lists share element storage and
	// instances share their context.
	Copy() Value
	// Binary applies op with the receiver as left operand. Unsupported
	// combinations return ErrIllegalOperation.
	Binary(op BinaryOp, right Value) (Value, error)

	Start() token.Position
	End() token.Position
	SetPos(start, end token.Position)
	Context() *Context
	SetContext(ctx *Context)
}

// meta holds the position and owner context shared by all values.
type meta struct {
	start, end token.Position
	ctx        *Context
}

func (m *meta) Start() token.Position { return m.start }
func (m *meta) End() token.Position   { return m.end }
func (m *meta) Context() *Context     { return m.ctx }

func (m *meta) SetPos(start, end token.Position) {
	m.start = start
	m.end = end
}

func (m *meta) SetContext(ctx *Context) { m.ctx = ctx }

// retag copies v and stamps it with the given span and context.
func retag(v Value, start, end token.Position, ctx *Context) Value {
	c := v.Copy()
	c.SetPos(start, end)
	c.SetContext(ctx)
	return c
}
