package evaluator

import (
	"math"

	"github.com/funvibe/vela/internal/ast"
)

func (e *Evaluator) evalIf(n *ast.If, ctx *Context) Result {
	for _, c := range n.Cases {
		cond := e.Eval(c.Condition, ctx)
		if cond.ShouldReturn() {
			return cond
		}
		if !cond.Value.Truthy() {
			continue
		}
		return e.evalBranch(n, c.Body, c.NullResult, ctx)
	}
	if n.Else != nil {
		return e.evalBranch(n, n.Else.Body, n.Else.NullResult, ctx)
	}
	return Ok(null(n, ctx))
}

func (e *Evaluator) evalBranch(n ast.Node, body ast.Node, nullResult bool, ctx *Context) Result {
	res := e.Eval(body, ctx)
	if res.ShouldReturn() {
		return res
	}
	if nullResult {
		return Ok(null(n, ctx))
	}
	return res
}

// loopStep classifies the result of one loop body run. It reports whether
// the loop must stop; a stopping result that is not a break must be
// propagated.
func loopStep(res Result) (stop, propagate bool) {
	switch res.Signal {
	case SignalBreak:
		return true, false
	case SignalReturn, SignalError:
		return true, true
	}
	return false, false
}

// collectsValues reports whether a loop evaluates to the list of its
// iteration values. Only single-expression bodies do; a statement block or a
// null-suppressed loop evaluates to Null and keeps nothing.
func collectsValues(body ast.Node, nullResult bool) bool {
	if nullResult {
		return false
	}
	_, isBlock := body.(*ast.Block)
	return !isBlock
}

// loopResult is the value of a finished loop: the list of values produced
// by completed iterations, or Null when the loop does not collect them.
func loopResult(n ast.Node, values []Value, collect bool, ctx *Context) Result {
	if !collect {
		return Ok(null(n, ctx))
	}
	list := NewList(values)
	list.SetPos(n.Pos(), n.End())
	list.SetContext(ctx)
	return Ok(list)
}

func (e *Evaluator) evalFor(n *ast.For, ctx *Context) Result {
	from, res := e.forBound(n.From, "start", ctx)
	if res.ShouldReturn() {
		return res
	}
	to, res := e.forBound(n.To, "end", ctx)
	if res.ShouldReturn() {
		return res
	}
	step := NewInt(1)
	if n.Step != nil {
		if step, res = e.forBound(n.Step, "step", ctx); res.ShouldReturn() {
			return res
		}
	}
	if step.IsZero() {
		return Fail(newRuntimeError(ErrType, n.Step.Pos(), n.Step.End(), ctx, "for loop step cannot be zero"))
	}

	name := n.Var.Lexeme
	if !ctx.Scope.CanBeRewritten(name) {
		return Fail(newRuntimeError(ErrConstantReassign, n.Var.Start, n.Var.End, ctx,
			"cannot assign to constant '%s'", name))
	}

	collect := collectsValues(n.Body, n.NullResult)
	var values []Value
	// iterate binds the counter and runs the body once. It reports whether
	// the loop must stop, and the result to propagate if any.
	iterate := func(counter *Number) (Result, bool) {
		counter.SetPos(n.Var.Start, n.Var.End)
		counter.SetContext(ctx)
		ctx.Scope.Set(name, counter, true)

		res := e.Eval(n.Body, ctx)
		if stop, propagate := loopStep(res); stop {
			if propagate {
				return res, true
			}
			return Result{}, true
		}
		if collect && res.IsOk() {
			values = append(values, res.Value)
		}
		return Result{}, false
	}

	if from.IsFloat || to.IsFloat || step.IsFloat {
		end, inc := to.float(), step.float()
		for cur := from.float(); (inc > 0 && cur < end) || (inc < 0 && cur > end); cur += inc {
			if cur+inc == cur {
				stepNode := ast.Node(n)
				if n.Step != nil {
					stepNode = n.Step
				}
				return Fail(newRuntimeError(ErrType, stepNode.Pos(), stepNode.End(), ctx,
					"for loop step %s cannot advance the counter from %s", step.Inspect(), NewFloat(cur).Inspect()))
			}
			if res, stop := iterate(NewFloat(cur)); stop {
				if res.ShouldReturn() {
					return res
				}
				break
			}
		}
	} else {
		end, inc := to.Int, step.Int
		for cur := from.Int; (inc > 0 && cur < end) || (inc < 0 && cur > end); cur += inc {
			if res, stop := iterate(NewInt(cur)); stop {
				if res.ShouldReturn() {
					return res
				}
				break
			}
			// The next counter would not fit in an int64, so it is past end.
			if (inc > 0 && cur > math.MaxInt64-inc) || (inc < 0 && cur < math.MinInt64-inc) {
				break
			}
		}
	}
	return loopResult(n, values, collect, ctx)
}

// forBound evaluates a for loop bound, which must be a Number.
func (e *Evaluator) forBound(node ast.Node, name string, ctx *Context) (*Number, Result) {
	res := e.Eval(node, ctx)
	if res.ShouldReturn() {
		return nil, res
	}
	num, ok := res.Value.(*Number)
	if !ok {
		return nil, Fail(newRuntimeError(ErrType, node.Pos(), node.End(), ctx,
			"for loop %s must be a %s, got %s", name, NumberKind, res.Value.Kind()))
	}
	return num, res
}

func (e *Evaluator) evalWhile(n *ast.While, ctx *Context) Result {
	collect := collectsValues(n.Body, n.NullResult)
	var values []Value
	for {
		cond := e.Eval(n.Condition, ctx)
		if cond.ShouldReturn() {
			return cond
		}
		if !cond.Value.Truthy() {
			break
		}

		res := e.Eval(n.Body, ctx)
		if stop, propagate := loopStep(res); stop {
			if propagate {
				return res
			}
			break
		}
		if collect && res.IsOk() {
			values = append(values, res.Value)
		}
	}
	return loopResult(n, values, collect, ctx)
}

// evalDoWhile runs the body once before the condition is first evaluated.
func (e *Evaluator) evalDoWhile(n *ast.DoWhile, ctx *Context) Result {
	collect := collectsValues(n.Body, n.NullResult)
	var values []Value
	for first := true; ; first = false {
		if !first {
			cond := e.Eval(n.Condition, ctx)
			if cond.ShouldReturn() {
				return cond
			}
			if !cond.Value.Truthy() {
				break
			}
		}

		res := e.Eval(n.Body, ctx)
		if stop, propagate := loopStep(res); stop {
			if propagate {
				return res
			}
			break
		}
		if collect && res.IsOk() {
			values = append(values, res.Value)
		}
	}
	return loopResult(n, values, collect, ctx)
}

// evalForEach iterates a snapshot of the list, so appending to it inside
// the body does not extend the loop.
func (e *Evaluator) evalForEach(n *ast.ForEach, ctx *Context) Result {
	listName := n.List.Lexeme
	value, ok := ctx.Scope.Get(listName)
	if !ok {
		return Fail(newRuntimeError(ErrListNotPresent, n.List.Start, n.List.End, ctx,
			"list '%s' is not present", listName))
	}
	list, ok := value.(*List)
	if !ok {
		return Fail(newRuntimeError(ErrType, n.List.Start, n.List.End, ctx,
			"'%s' is a %s, not a %s", listName, value.Kind(), ListKind))
	}

	name := n.Element.Lexeme
	if !ctx.Scope.CanBeRewritten(name) {
		return Fail(newRuntimeError(ErrConstantReassign, n.Element.Start, n.Element.End, ctx,
			"cannot assign to constant '%s'", name))
	}

	collect := collectsValues(n.Body, n.NullResult)
	var values []Value
	for _, el := range list.Snapshot() {
		ctx.Scope.Set(name, el, true)

		res := e.Eval(n.Body, ctx)
		if stop, propagate := loopStep(res); stop {
			if propagate {
				return res
			}
			break
		}
		if collect && res.IsOk() {
			values = append(values, res.Value)
		}
	}
	return loopResult(n, values, collect, ctx)
}

// evalSwitch compares case values with the subject by their textual
// representation. Only the first matching case runs. Break ends the switch;
// continue belongs to the enclosing loop and is propagated.
func (e *Evaluator) evalSwitch(n *ast.Switch, ctx *Context) Result {
	subjectName := n.Subject.Lexeme
	subject, ok := ctx.Scope.Get(subjectName)
	if !ok {
		return Fail(newRuntimeError(ErrUndefinedVariable, n.Subject.Start, n.Subject.End, ctx,
			"'%s' is not defined", subjectName))
	}
	key := subject.Inspect()

	for _, c := range n.Cases {
		value := e.Eval(c.Value, ctx)
		if value.Signal == SignalBreak {
			return Ok(null(n, ctx))
		}
		if value.ShouldReturn() {
			return value
		}
		if value.Value.Inspect() != key {
			continue
		}
		return e.switchBody(n, c.Body, ctx)
	}
	if n.Default != nil {
		return e.switchBody(n, n.Default, ctx)
	}
	return Ok(null(n, ctx))
}

func (e *Evaluator) switchBody(n *ast.Switch, body ast.Node, ctx *Context) Result {
	res := e.Eval(body, ctx)
	if res.Signal == SignalBreak || res.IsOk() {
		return Ok(null(n, ctx))
	}
	return res
}

func (e *Evaluator) evalReturn(n *ast.Return, ctx *Context) Result {
	if n.Value == nil {
		return Return(null(n, ctx)).at(span(n))
	}
	res := e.Eval(n.Value, ctx)
	if res.ShouldReturn() {
		return res
	}
	return Return(res.Value).at(span(n))
}
