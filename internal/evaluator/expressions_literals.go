package evaluator

import (
	"github.com/funvibe/vela/internal/ast"
)

func (e *Evaluator) evalNumberLiteral(n *ast.NumberLiteral, ctx *Context) Result {
	var num *Number
	if n.IsFloat {
		num = NewFloat(n.Float)
	} else {
		num = NewInt(n.Int)
	}
	num.SetPos(n.Pos(), n.End())
	num.SetContext(ctx)
	return Ok(num)
}

func (e *Evaluator) evalStringLiteral(n *ast.StringLiteral, ctx *Context) Result {
	s := NewString(n.Value)
	s.SetPos(n.Pos(), n.End())
	s.SetContext(ctx)
	return Ok(s)
}

func (e *Evaluator) evalListLiteral(n *ast.ListLiteral, ctx *Context) Result {
	elements := make([]Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		res := e.Eval(el, ctx)
		if res.ShouldReturn() {
			return res
		}
		elements = append(elements, res.Value)
	}
	list := NewList(elements)
	list.SetPos(n.Pos(), n.End())
	list.SetContext(ctx)
	return Ok(list)
}

// evalBlock runs statements in order. The block's value is the list of
// statement values; bodies that should not expose it are null-suppressed by
// their enclosing construct.
func (e *Evaluator) evalBlock(n *ast.Block, ctx *Context) Result {
	values := make([]Value, 0, len(n.Statements))
	for _, stmt := range n.Statements {
		res := e.Eval(stmt, ctx)
		if res.ShouldReturn() {
			return res
		}
		values = append(values, res.Value)
	}
	list := NewList(values)
	list.SetPos(n.Pos(), n.End())
	list.SetContext(ctx)
	return Ok(list)
}

// null returns a Null stamped with node's span.
func null(node ast.Node, ctx *Context) Value {
	v := NewNull()
	v.SetPos(node.Pos(), node.End())
	v.SetContext(ctx)
	return v
}
