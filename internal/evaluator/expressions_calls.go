package evaluator

import (
	"log/slog"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/symbols"
	"github.com/funvibe/vela/internal/token"
)

func (e *Evaluator) evalFuncDef(n *ast.FuncDef, ctx *Context) Result {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Lexeme
	}
	fn := &Function{
		Name:       n.Name.Lexeme,
		Params:     params,
		Body:       n.Body,
		Closure:    ctx,
		AutoReturn: n.AutoReturn,
	}
	fn.SetPos(n.Pos(), n.End())
	fn.SetContext(ctx)

	if !n.IsAnonymous() {
		if !ctx.Scope.CanBeRewritten(fn.Name) {
			return Fail(newRuntimeError(ErrConstantReassign, n.Name.Start, n.Name.End, ctx,
				"cannot assign to constant '%s'", fn.Name))
		}
		ctx.Scope.Set(fn.Name, fn, true)
	}
	return Ok(fn)
}

func (e *Evaluator) evalCall(n *ast.Call, ctx *Context) Result {
	callee := e.Eval(n.Callee, ctx)
	if callee.ShouldReturn() {
		return callee
	}
	if !isCallable(callee.Value) {
		return Fail(newRuntimeError(ErrNotCallable, n.Callee.Pos(), n.Callee.End(), ctx,
			"'%s' is not callable", callee.Value.Inspect()))
	}

	args, res := e.evalArgs(n.Args, ctx)
	if res.ShouldReturn() {
		return res
	}
	return e.CallValue(callee.Value, args, n.Pos(), n.End(), ctx)
}

func (e *Evaluator) evalArgs(nodes []ast.Node, ctx *Context) ([]Value, Result) {
	args := make([]Value, 0, len(nodes))
	for _, node := range nodes {
		res := e.Eval(node, ctx)
		if res.ShouldReturn() {
			return nil, res
		}
		args = append(args, res.Value)
	}
	return args, Result{}
}

func isCallable(v Value) bool {
	switch v.(type) {
	case *Function, *Builtin:
		return true
	}
	return false
}

// CallValue calls a Function or Builtin with already evaluated arguments.
// The result is a copy stamped with the call span and the caller's context.
func (e *Evaluator) CallValue(fn Value, args []Value, start, end token.Position, caller *Context) Result {
	var res Result
	switch f := fn.(type) {
	case *Function:
		res = e.callFunction(f, f.Closure, args, start, end, caller)
	case *Builtin:
		res = e.callBuiltin(f, args, start, end, caller)
	default:
		return Fail(newRuntimeError(ErrNotCallable, start, end, caller,
			"'%s' is not callable", fn.Inspect()))
	}
	if res.ShouldReturn() {
		return res
	}
	return Ok(retag(res.Value, start, end, caller))
}

// callFunction runs f's body in a fresh context whose lexical parent is
// parent. Normally parent is the closure; struct method calls pass the
// instance context instead.
func (e *Evaluator) callFunction(f *Function, parent *Context, args []Value, start, end token.Position, caller *Context) Result {
	if res := checkArity(f.DisplayName(), len(f.Params), args, start, end, caller); res.ShouldReturn() {
		return res
	}

	exec := &Context{
		Name:     f.DisplayName(),
		Scope:    symbols.NewEnclosed(parent.Scope),
		Parent:   parent,
		Caller:   caller,
		EntryPos: start,
	}
	for i, p := range f.Params {
		arg := args[i]
		if def, ok := arg.(*StructDefinition); ok {
			res := def.Instantiate(e, arg.Start(), arg.End(), caller)
			if res.ShouldReturn() {
				return res
			}
			arg = res.Value
		}
		exec.Scope.Set(p, arg, true)
	}

	e.Logger.Debug("call",
		slog.String("function", f.DisplayName()),
		slog.Int("args", len(args)),
		slog.Int("depth", e.depth),
		slog.String("pos", start.String()))

	res := e.Eval(f.Body, exec)
	if res := functionBoundary(res, f.DisplayName(), exec); res.ShouldReturn() {
		return res
	}
	if res.Signal == SignalReturn {
		return Ok(res.Value)
	}
	if f.AutoReturn {
		return Ok(res.Value)
	}
	return Ok(NewNull())
}

func (e *Evaluator) callBuiltin(b *Builtin, args []Value, start, end token.Position, caller *Context) Result {
	if res := checkArity(b.Name, len(b.Params), args, start, end, caller); res.ShouldReturn() {
		return res
	}

	exec := &Context{
		Name:     b.Name,
		Scope:    symbols.NewEnclosed(caller.Scope),
		Parent:   caller,
		Caller:   caller,
		EntryPos: start,
	}
	for i, p := range b.Params {
		exec.Scope.Set(p, args[i], true)
	}

	e.Logger.Debug("call builtin",
		slog.String("function", b.Name),
		slog.Int("args", len(args)),
		slog.Int("depth", e.depth))

	res := b.Fn(&Invocation{Evaluator: e, Context: exec, Args: args, Start: start, End: end})
	if res := functionBoundary(res, b.Name, exec); res.ShouldReturn() {
		return res
	}
	if res.Value == nil {
		return Ok(NewNull())
	}
	return Ok(res.Value)
}

// functionBoundary returns a failing result when res must not leave a
// function: an error, or a continue/break with no enclosing loop. Return is
// consumed by the caller.
func functionBoundary(res Result, name string, exec *Context) Result {
	switch res.Signal {
	case SignalError:
		return res
	case SignalContinue, SignalBreak:
		return Fail(newRuntimeError(ErrUnconsumedSignal, res.Span.Start, res.Span.End, exec,
			"'%s' outside of a loop in '%s'", res.Signal, name))
	}
	return Result{}
}

func checkArity(name string, want int, args []Value, start, end token.Position, ctx *Context) Result {
	switch got := len(args); {
	case got > want:
		return Fail(newRuntimeError(ErrArity, start, end, ctx,
			"%d too many args passed into '%s'", got-want, name))
	case got < want:
		return Fail(newRuntimeError(ErrArity, start, end, ctx,
			"%d too few args passed into '%s'", want-got, name))
	}
	return Result{}
}
