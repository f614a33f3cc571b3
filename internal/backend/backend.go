// Package backend runs decoded programs. The tree-walk evaluator is the only
// backend; the interface keeps the pipeline independent of it.
package backend

import (
	"github.com/funvibe/vela/internal/evaluator"
	"github.com/funvibe/vela/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the result
	Run(ctx *pipeline.PipelineContext) (evaluator.Value, error)

	// Name returns the backend name for display
	Name() string
}
