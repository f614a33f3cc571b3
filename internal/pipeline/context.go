// Package pipeline chains the stages that take a program from a file to a
// result: load, decode, execute.
package pipeline

import (
	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/diagnostics"
	"github.com/funvibe/vela/internal/evaluator"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// PipelineContext carries a program through the stages.
type PipelineContext struct {
	FilePath string
	Source   []byte
	AstRoot  ast.Node

	// Root is the context the program runs in. A REPL keeps it between
	// inputs; when nil the backend creates a fresh one.
	Root   *evaluator.Context
	Result evaluator.Value

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(filePath string, source []byte) *PipelineContext {
	return &PipelineContext{FilePath: filePath, Source: source}
}

// AddError records err as a diagnostic.
func (c *PipelineContext) AddError(err error) {
	c.Errors = append(c.Errors, diagnostics.FromError(err))
}

func (c *PipelineContext) HasErrors() bool { return len(c.Errors) > 0 }
