package evaluator

import (
	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/token"
)

func (e *Evaluator) evalBinaryOp(n *ast.BinaryOp, ctx *Context) Result {
	var res Result
	left := res.Register(e.Eval(n.Left, ctx))
	if res.ShouldReturn() {
		return res
	}
	right := res.Register(e.Eval(n.Right, ctx))
	if res.ShouldReturn() {
		return res
	}

	op, ok := binaryOpFor(n.Op)
	if !ok {
		return Fail(newRuntimeError(ErrIllegalOperation, n.Pos(), n.End(), ctx,
			"unknown binary operator '%s'", n.Op.Lexeme))
	}
	value, err := left.Binary(op, right)
	if err != nil {
		return Fail(operationError(err, op.String(), left, right, n.Pos(), n.End(), ctx))
	}
	value.SetPos(n.Pos(), n.End())
	value.SetContext(ctx)
	return Ok(value)
}

func (e *Evaluator) evalUnaryOp(n *ast.UnaryOp, ctx *Context) Result {
	operand := e.Eval(n.Operand, ctx)
	if operand.ShouldReturn() {
		return operand
	}

	value, err := unary(n.Op, operand.Value)
	if err != nil {
		return Fail(operationError(err, n.Op.Symbol(), operand.Value, nil, n.Pos(), n.End(), ctx))
	}
	value.SetPos(n.Pos(), n.End())
	value.SetContext(ctx)
	return Ok(value)
}

// unary applies a prefix operator. Negation and identity go through
// multiplication so every kind that multiplies by a Number supports them.
func unary(op token.Token, v Value) (Value, error) {
	switch {
	case op.Type == token.MINUS:
		return v.Binary(OpMul, NewInt(-1))
	case op.Type == token.PLUS:
		return v.Binary(OpMul, NewInt(1))
	case op.Is(token.KeywordNot):
		return NewBool(!v.Truthy()), nil
	case op.Type == token.LOGIC_NOT:
		return bitwiseNot(v)
	}
	return nil, ErrIllegalOperation
}

// operationError converts an error from the operator protocol into a
// RuntimeError. right is nil for unary operators.
func operationError(err error, op string, left, right Value, start, end token.Position, ctx *Context) *RuntimeError {
	kind := errorKind(err)
	if err != ErrIllegalOperation {
		return newRuntimeError(kind, start, end, ctx, "%s", err)
	}
	if right == nil {
		return newRuntimeError(kind, start, end, ctx,
			"illegal operation: cannot apply '%s' to %s", op, left.Kind())
	}
	return newRuntimeError(kind, start, end, ctx,
		"illegal operation: cannot perform '%s' between %s and %s", op, left.Kind(), right.Kind())
}
