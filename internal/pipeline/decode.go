package pipeline

import (
	"os"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/diagnostics"
)

// LoadProcessor reads FilePath into Source unless a source was supplied.
type LoadProcessor struct{}

func (LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Source != nil || ctx.FilePath == "" {
		return ctx
	}
	data, err := os.ReadFile(ctx.FilePath)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Source = data
	return ctx
}

// DecodeProcessor turns Source into an AST.
type DecodeProcessor struct{}

func (DecodeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot != nil || ctx.HasErrors() {
		return ctx
	}
	root, err := ast.Decode(ctx.FilePath, ctx.Source)
	if err != nil {
		d := diagnostics.FromError(err)
		// YAML syntax errors carry no position of their own.
		d.Code = diagnostics.ErrD001
		ctx.Errors = append(ctx.Errors, d)
		return ctx
	}
	ctx.AstRoot = root
	return ctx
}
