package backend

import (
	"errors"
	"io"
	"log/slog"

	"github.com/funvibe/vela/internal/config"
	"github.com/funvibe/vela/internal/evaluator"
	"github.com/funvibe/vela/internal/pipeline"
)

// TreeWalkBackend runs programs with the tree-walk evaluator.
type TreeWalkBackend struct {
	Out      io.Writer
	Logger   *slog.Logger
	MaxDepth int

	// Stdlib registers the builtins and constants into fresh root contexts.
	Stdlib bool
}

// NewTreeWalk creates a tree-walk backend from a run configuration.
func NewTreeWalk(cfg *config.Config, out io.Writer, logger *slog.Logger) *TreeWalkBackend {
	if cfg == nil {
		cfg = config.Default()
	}
	return &TreeWalkBackend{
		Out:      out,
		Logger:   logger,
		MaxDepth: cfg.MaxDepth,
		Stdlib:   cfg.UseStdlib(),
	}
}

// Run evaluates ctx.AstRoot in ctx.Root, creating the root context on first
// use so later runs (REPL inputs) share its bindings.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (evaluator.Value, error) {
	if ctx.AstRoot == nil {
		return nil, errors.New("no AST to execute")
	}

	if ctx.Root == nil {
		ctx.Root = b.NewRoot()
	}

	return b.NewEvaluator().Run(ctx.AstRoot, ctx.Root).Unwrap()
}

// NewRoot creates a program root context, with the standard builtins when
// Stdlib is set.
func (b *TreeWalkBackend) NewRoot() *evaluator.Context {
	root := evaluator.NewRootContext(config.ProgramContextName)
	if b.Stdlib {
		evaluator.RegisterBuiltins(root)
	}
	return root
}

// NewEvaluator returns an evaluator configured like the ones Run uses.
func (b *TreeWalkBackend) NewEvaluator() *evaluator.Evaluator {
	var opts []evaluator.Option
	if b.Out != nil {
		opts = append(opts, evaluator.WithOutput(b.Out))
	}
	if b.Logger != nil {
		opts = append(opts, evaluator.WithLogger(b.Logger))
	}
	if b.MaxDepth > 0 {
		opts = append(opts, evaluator.WithMaxDepth(b.MaxDepth))
	}
	return evaluator.New(opts...)
}

// Name returns the backend name
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}
