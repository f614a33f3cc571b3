// Package ext re-exports the evaluator types needed to write builtins
// outside this module, for use with embed's Interpreter.Register.
package ext

import (
	"github.com/funvibe/vela/internal/evaluator"
)

// Value types aliases
type Value = evaluator.Value
type Kind = evaluator.Kind
type Number = evaluator.Number
type String = evaluator.String
type List = evaluator.List
type Null = evaluator.Null
type Function = evaluator.Function
type Builtin = evaluator.Builtin
type StructInstance = evaluator.StructInstance

// Builtin contract
type NativeFunc = evaluator.NativeFunc
type Invocation = evaluator.Invocation
type Result = evaluator.Result
type RuntimeError = evaluator.RuntimeError

// Value kinds
const (
	NumberKind         = evaluator.NumberKind
	StringKind         = evaluator.StringKind
	ListKind           = evaluator.ListKind
	FunctionKind       = evaluator.FunctionKind
	BuiltinKind        = evaluator.BuiltinKind
	StructInstanceKind = evaluator.StructInstanceKind
	NullKind           = evaluator.NullKind
)

// Runtime error kinds, for Invocation.Fail and errors.Is.
var (
	ErrType              = evaluator.ErrType
	ErrIllegalOperation  = evaluator.ErrIllegalOperation
	ErrIndexOutOfRange   = evaluator.ErrIndexOutOfRange
	ErrDivisionByZero    = evaluator.ErrDivisionByZero
	ErrArity             = evaluator.ErrArity
	ErrUndefinedVariable = evaluator.ErrUndefinedVariable
	ErrRecursionDepth    = evaluator.ErrRecursionDepth
)

// Constructors

func NewBuiltin(name string, params []string, fn NativeFunc) *Builtin {
	return evaluator.NewBuiltin(name, params, fn)
}

func NewInt(v int64) *Number      { return evaluator.NewInt(v) }
func NewFloat(v float64) *Number  { return evaluator.NewFloat(v) }
func NewBool(b bool) *Number      { return evaluator.NewBool(b) }
func NewString(s string) *String  { return evaluator.NewString(s) }
func NewList(items []Value) *List { return evaluator.NewList(items) }
func NewNull() *Null              { return evaluator.NewNull() }
