package evaluator

import (
	"io"
	"log/slog"
	"os"

	"github.com/coregx/coregex"
	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/config"
	"github.com/funvibe/vela/internal/token"
)

// Evaluator walks an AST and produces Results. It is not safe for
// concurrent use.
type Evaluator struct {
	// Out receives program output (print).
	Out io.Writer
	// Logger receives call and instantiation trace records at debug level.
	Logger *slog.Logger
	// MaxDepth bounds nested Eval calls.
	MaxDepth int

	depth   int
	regexps map[string]*coregex.Regexp
}

// Option configures an Evaluator.
type Option func(*Evaluator)

func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.Out = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.Logger = l }
}

func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.MaxDepth = n
		}
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		Out:      os.Stdout,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxDepth: config.MaxEvalDepth,
		regexps:  make(map[string]*coregex.Regexp),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval evaluates node in ctx.
func (e *Evaluator) Eval(node ast.Node, ctx *Context) Result {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.MaxDepth {
		return Fail(newRuntimeError(ErrRecursionDepth, node.Pos(), node.End(), ctx,
			"maximum recursion depth exceeded (%d)", e.MaxDepth))
	}
	return ast.Accept[Result](node, visitor{e: e, ctx: ctx})
}

// Run evaluates a whole program. A return, continue or break that reaches
// the top level is reported as an error.
func (e *Evaluator) Run(program ast.Node, ctx *Context) Result {
	res := e.Eval(program, ctx)
	switch res.Signal {
	case SignalReturn, SignalContinue, SignalBreak:
		return Fail(newRuntimeError(ErrUnconsumedSignal, res.Span.Start, res.Span.End, ctx,
			"'%s' outside of a function or loop", res.Signal))
	}
	return res
}

// Depth reports the current nesting of Eval calls.
func (e *Evaluator) Depth() int { return e.depth }

func span(n ast.Node) token.Span {
	return token.Span{Start: n.Pos(), End: n.End()}
}

// visitor binds an evaluator to the context a node is evaluated in.
type visitor struct {
	e   *Evaluator
	ctx *Context
}

var _ ast.Visitor[Result] = visitor{}

func (v visitor) VisitNumberLiteral(n *ast.NumberLiteral) Result {
	return v.e.evalNumberLiteral(n, v.ctx)
}
func (v visitor) VisitStringLiteral(n *ast.StringLiteral) Result {
	return v.e.evalStringLiteral(n, v.ctx)
}
func (v visitor) VisitListLiteral(n *ast.ListLiteral) Result { return v.e.evalListLiteral(n, v.ctx) }
func (v visitor) VisitBlock(n *ast.Block) Result             { return v.e.evalBlock(n, v.ctx) }

func (v visitor) VisitBinaryOp(n *ast.BinaryOp) Result { return v.e.evalBinaryOp(n, v.ctx) }
func (v visitor) VisitUnaryOp(n *ast.UnaryOp) Result   { return v.e.evalUnaryOp(n, v.ctx) }

func (v visitor) VisitVarAccess(n *ast.VarAccess) Result     { return v.e.evalVarAccess(n, v.ctx) }
func (v visitor) VisitVarAssign(n *ast.VarAssign) Result     { return v.e.evalVarAssign(n, v.ctx) }
func (v visitor) VisitVarReassign(n *ast.VarReassign) Result { return v.e.evalVarReassign(n, v.ctx) }
func (v visitor) VisitDelete(n *ast.Delete) Result           { return v.e.evalDelete(n, v.ctx) }

func (v visitor) VisitIf(n *ast.If) Result             { return v.e.evalIf(n, v.ctx) }
func (v visitor) VisitFor(n *ast.For) Result           { return v.e.evalFor(n, v.ctx) }
func (v visitor) VisitWhile(n *ast.While) Result       { return v.e.evalWhile(n, v.ctx) }
func (v visitor) VisitDoWhile(n *ast.DoWhile) Result   { return v.e.evalDoWhile(n, v.ctx) }
func (v visitor) VisitForEach(n *ast.ForEach) Result   { return v.e.evalForEach(n, v.ctx) }
func (v visitor) VisitSwitch(n *ast.Switch) Result     { return v.e.evalSwitch(n, v.ctx) }
func (v visitor) VisitReturn(n *ast.Return) Result     { return v.e.evalReturn(n, v.ctx) }
func (v visitor) VisitContinue(n *ast.Continue) Result { return Continue().at(span(n)) }
func (v visitor) VisitBreak(n *ast.Break) Result       { return Break().at(span(n)) }

func (v visitor) VisitFuncDef(n *ast.FuncDef) Result { return v.e.evalFuncDef(n, v.ctx) }
func (v visitor) VisitCall(n *ast.Call) Result       { return v.e.evalCall(n, v.ctx) }

func (v visitor) VisitStructDef(n *ast.StructDef) Result { return v.e.evalStructDef(n, v.ctx) }
func (v visitor) VisitStructAccess(n *ast.StructAccess) Result {
	return v.e.evalStructAccess(n, v.ctx)
}
func (v visitor) VisitStructReassign(n *ast.StructReassign) Result {
	return v.e.evalStructReassign(n, v.ctx)
}
func (v visitor) VisitStructCall(n *ast.StructCall) Result { return v.e.evalStructCall(n, v.ctx) }
