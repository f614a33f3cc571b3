package evaluator

import (
	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/token"
)

func (e *Evaluator) evalVarAccess(n *ast.VarAccess, ctx *Context) Result {
	name := n.Name.Lexeme
	value, ok := ctx.Scope.Get(name)
	if !ok {
		return Fail(newRuntimeError(ErrUndefinedVariable, n.Pos(), n.End(), ctx,
			"'%s' is not defined", name))
	}
	return Ok(retag(value, n.Pos(), n.End(), ctx))
}

func (e *Evaluator) evalVarAssign(n *ast.VarAssign, ctx *Context) Result {
	var res Result
	value := res.Register(e.Eval(n.Value, ctx))
	if res.ShouldReturn() {
		return res
	}

	// Declarations never alias an instance: both definitions and instances
	// are instantiated anew.
	switch v := value.(type) {
	case *StructDefinition:
		value = res.Register(v.Instantiate(e, n.Pos(), n.End(), ctx))
	case *StructInstance:
		value = res.Register(v.Definition.Instantiate(e, n.Pos(), n.End(), ctx))
	}
	if res.ShouldReturn() {
		return res
	}

	name := n.Name.Lexeme
	if !ctx.Scope.CanBeRewritten(name) {
		return Fail(newRuntimeError(ErrConstantReassign, n.Pos(), n.End(), ctx,
			"cannot assign to constant '%s'", name))
	}
	ctx.Scope.Set(name, value, n.Mutable)
	return Ok(retag(value, n.Pos(), n.End(), ctx))
}

func (e *Evaluator) evalVarReassign(n *ast.VarReassign, ctx *Context) Result {
	var rhs Value
	if n.Value != nil {
		res := e.Eval(n.Value, ctx)
		if res.ShouldReturn() {
			return res
		}
		rhs = res.Value
	}

	name := n.Name.Lexeme
	sym, ok := ctx.Scope.Lookup(name)
	if !ok {
		return Fail(newRuntimeError(ErrNotDeclared, n.Pos(), n.End(), ctx,
			"variable '%s' is not declared", name))
	}
	if sym.IsConstant {
		return Fail(newRuntimeError(ErrConstantReassign, n.Pos(), n.End(), ctx,
			"cannot reassign constant '%s'", name))
	}

	res := e.assignValue(n.Op, sym.Value, rhs, n.Pos(), n.End(), ctx)
	if res.ShouldReturn() {
		return res
	}
	ctx.Scope.Update(name, res.Value)
	return Ok(retag(res.Value, n.Pos(), n.End(), ctx))
}

func (e *Evaluator) evalDelete(n *ast.Delete, ctx *Context) Result {
	name := n.Name.Lexeme
	if !ctx.Scope.Delete(name) {
		return Fail(newRuntimeError(ErrNotDeclared, n.Pos(), n.End(), ctx,
			"variable '%s' is not declared", name))
	}
	return Ok(null(n, ctx))
}

// assignValue computes the value an assignment operator stores, given the
// current value and the right-hand side. rhs is nil only for a bare "~=".
func (e *Evaluator) assignValue(op token.Token, current, rhs Value, start, end token.Position, ctx *Context) Result {
	if rhs == nil && op.Type != token.LOGIC_NOT_EQ {
		return Fail(newRuntimeError(ErrIllegalOperation, start, end, ctx,
			"assignment operator '%s' needs a value", op.Lexeme))
	}

	switch op.Type {
	case token.EQ:
		// Plain assignment instantiates a definition but aliases an
		// existing instance.
		if def, ok := rhs.(*StructDefinition); ok {
			return def.Instantiate(e, start, end, ctx)
		}
		return Ok(rhs)
	case token.LOGIC_NOT_EQ:
		target := rhs
		if target == nil {
			target = current
		}
		value, err := bitwiseNot(target)
		if err != nil {
			return Fail(operationError(err, "~", target, nil, start, end, ctx))
		}
		return Ok(value)
	}

	bop, ok := binaryOpFor(op)
	if !ok {
		return Fail(newRuntimeError(ErrIllegalOperation, start, end, ctx,
			"unknown assignment operator '%s'", op.Lexeme))
	}
	value, err := current.Binary(bop, rhs)
	if err != nil {
		return Fail(operationError(err, bop.String(), current, rhs, start, end, ctx))
	}
	return Ok(value)
}
