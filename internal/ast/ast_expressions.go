package ast

import "github.com/funvibe/vela/internal/token"

// BinaryOp is an infix operation, e.g. a + b.
type BinaryOp struct {
	Location
	Left  Node
	Op    token.Token
	Right Node
}

func (bo *BinaryOp) node() {}

// UnaryOp is a prefix operation: -x, +x, not x, ~x.
type UnaryOp struct {
	Location
	Op      token.Token
	Operand Node
}

func (uo *UnaryOp) node() {}

// VarAccess reads a variable.
type VarAccess struct {
	Location
	Name token.Token
}

func (va *VarAccess) node() {}

// VarAssign declares a variable: var x = ... or const x = ...
type VarAssign struct {
	Location
	Name    token.Token
	Value   Node
	Mutable bool // false for const
}

func (va *VarAssign) node() {}

// VarReassign writes an existing variable: x = ..., x += ..., x ~= ...
// Value may be nil for the unary compound forms.
type VarReassign struct {
	Location
	Name  token.Token
	Op    token.Token
	Value Node
}

func (vr *VarReassign) node() {}

// Delete removes a binding: del x
type Delete struct {
	Location
	Name token.Token
}

func (d *Delete) node() {}

// FuncDef defines a function. Name.Lexeme is empty for anonymous functions.
// AutoReturn makes the value of Body the return value (arrow bodies).
type FuncDef struct {
	Location
	Name       token.Token
	Params     []token.Token
	Body       Node
	AutoReturn bool
}

func (fd *FuncDef) node() {}

// IsAnonymous reports whether the function has no name.
func (fd *FuncDef) IsAnonymous() bool { return fd.Name.Lexeme == "" }

// Call invokes a callee with arguments.
type Call struct {
	Location
	Callee Node
	Args   []Node
}

func (c *Call) node() {}

// StructDef declares a struct: struct Name { members }
type StructDef struct {
	Location
	Name token.Token
	Body Node
}

func (sd *StructDef) node() {}

// StructAccess reads a member of a struct instance: a.b
type StructAccess struct {
	Location
	Struct token.Token
	Member token.Token
}

func (sa *StructAccess) node() {}

// StructReassign writes a member of a struct instance: a.b = ..., a.b += ...
type StructReassign struct {
	Location
	Struct token.Token
	Member token.Token
	Op     token.Token
	Value  Node
}

func (sr *StructReassign) node() {}

// StructCall calls a member of a struct instance: a.b(...)
type StructCall struct {
	Location
	Struct token.Token
	Member token.Token
	Args   []Node
}

func (sc *StructCall) node() {}
