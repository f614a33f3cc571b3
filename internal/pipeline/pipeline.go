package pipeline

// Pipeline runs processors in order over one PipelineContext. Every stage
// runs; a stage that needs earlier output checks HasErrors itself, so a
// failed load still reaches later stages and all diagnostics are collected.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Frontend loads a document from FilePath (unless Source is set) and
// decodes it into AstRoot.
func Frontend() *Pipeline {
	return New(LoadProcessor{}, DecodeProcessor{})
}

// With returns a new pipeline running p's stages followed by more.
// p itself is left unchanged.
func (p *Pipeline) With(more ...Processor) *Pipeline {
	stages := make([]Processor, 0, len(p.processors)+len(more))
	stages = append(stages, p.processors...)
	stages = append(stages, more...)
	return New(stages...)
}

// Stages reports the number of processors.
func (p *Pipeline) Stages() int { return len(p.processors) }

// Run executes the pipeline. A processor returning nil keeps the context it
// was given.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, processor := range p.processors {
		if next := processor.Process(ctx); next != nil {
			ctx = next
		}
	}
	return ctx
}
