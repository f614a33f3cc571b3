package evaluator

import (
	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/token"
)

func (e *Evaluator) evalStructDef(n *ast.StructDef, ctx *Context) Result {
	def := &StructDefinition{Name: n.Name.Lexeme, Body: n.Body, Closure: ctx}
	def.SetPos(n.Pos(), n.End())
	def.SetContext(ctx)

	if !ctx.Scope.CanBeRewritten(def.Name) {
		return Fail(newRuntimeError(ErrConstantReassign, n.Name.Start, n.Name.End, ctx,
			"cannot assign to constant '%s'", def.Name))
	}
	ctx.Scope.Set(def.Name, def, true)
	return Ok(def)
}

// instanceFor resolves the struct operand of a member expression.
func instanceFor(name token.Token, ctx *Context) (*StructInstance, Result) {
	value, ok := ctx.Scope.Get(name.Lexeme)
	if !ok {
		return nil, Fail(newRuntimeError(ErrStructNotFound, name.Start, name.End, ctx,
			"could not find struct '%s'", name.Lexeme))
	}
	switch v := value.(type) {
	case *StructInstance:
		return v, Result{}
	case *StructDefinition:
		return nil, Fail(newRuntimeError(ErrNotInstance, name.Start, name.End, ctx,
			"'%s' is a struct definition; assign it to a variable to create an instance", name.Lexeme))
	}
	return nil, Fail(newRuntimeError(ErrNotInstance, name.Start, name.End, ctx,
		"'%s' is a %s, not a struct instance", name.Lexeme, value.Kind()))
}

func memberNotFound(inst *StructInstance, member token.Token, ctx *Context) Result {
	return Fail(newRuntimeError(ErrMemberNotFound, member.Start, member.End, ctx,
		"could not find member '%s' in struct '%s'", member.Lexeme, inst.Definition.Name))
}

func (e *Evaluator) evalStructAccess(n *ast.StructAccess, ctx *Context) Result {
	inst, res := instanceFor(n.Struct, ctx)
	if res.ShouldReturn() {
		return res
	}
	value, ok := inst.Member(n.Member.Lexeme)
	if !ok {
		return memberNotFound(inst, n.Member, ctx)
	}
	return Ok(retag(value, n.Pos(), n.End(), ctx))
}

// evalStructReassign writes a member in the instance's own scope, never in
// an enclosing one.
func (e *Evaluator) evalStructReassign(n *ast.StructReassign, ctx *Context) Result {
	var rhs Value
	if n.Value != nil {
		res := e.Eval(n.Value, ctx)
		if res.ShouldReturn() {
			return res
		}
		rhs = res.Value
	}

	inst, res := instanceFor(n.Struct, ctx)
	if res.ShouldReturn() {
		return res
	}
	scope := inst.Env.Scope
	member := n.Member.Lexeme
	if !scope.PresentLocal(member) {
		return memberNotFound(inst, n.Member, ctx)
	}
	sym, _ := scope.Lookup(member)
	if sym.IsConstant {
		return Fail(newRuntimeError(ErrConstantReassign, n.Pos(), n.End(), ctx,
			"cannot reassign constant member '%s' of struct '%s'", member, inst.Definition.Name))
	}

	res = e.assignValue(n.Op, sym.Value, rhs, n.Pos(), n.End(), ctx)
	if res.ShouldReturn() {
		return res
	}
	scope.Set(member, res.Value, true)
	return Ok(retag(res.Value, n.Pos(), n.End(), ctx))
}

// evalStructCall calls a member. Functions run with the instance context as
// their lexical parent, so they see the instance's other members.
func (e *Evaluator) evalStructCall(n *ast.StructCall, ctx *Context) Result {
	inst, res := instanceFor(n.Struct, ctx)
	if res.ShouldReturn() {
		return res
	}
	member, ok := inst.Member(n.Member.Lexeme)
	if !ok {
		return memberNotFound(inst, n.Member, ctx)
	}
	if !isCallable(member) {
		return Fail(newRuntimeError(ErrNotCallable, n.Member.Start, n.Member.End, ctx,
			"member '%s' of struct '%s' is not callable", n.Member.Lexeme, inst.Definition.Name))
	}

	args, res := e.evalArgs(n.Args, ctx)
	if res.ShouldReturn() {
		return res
	}

	fn, ok := member.(*Function)
	if !ok {
		return e.CallValue(member, args, n.Pos(), n.End(), ctx)
	}
	res = e.callFunction(fn, inst.Env, args, n.Pos(), n.End(), ctx)
	if res.ShouldReturn() {
		return res
	}
	return Ok(retag(res.Value, n.Pos(), n.End(), ctx))
}
