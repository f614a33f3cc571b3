package evaluator

import (
	"errors"
	"fmt"

	"github.com/funvibe/vela/internal/token"
)

// Error kinds. A *RuntimeError unwraps to exactly one of these.
var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrConstantReassign  = errors.New("constant reassignment")
	ErrNotDeclared       = errors.New("variable not declared")
	ErrStructNotFound    = errors.New("struct not found")
	ErrMemberNotFound    = errors.New("struct member not found")
	ErrNotInstance       = errors.New("not a struct instance")
	ErrArity             = errors.New("wrong number of arguments")
	ErrNotCallable       = errors.New("value is not callable")
	ErrIllegalOperation  = errors.New("illegal operation")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrListNotPresent    = errors.New("list not present")
	ErrType              = errors.New("type error")
	ErrRecursionDepth    = errors.New("maximum recursion depth exceeded")
	ErrUnconsumedSignal  = errors.New("unconsumed control-flow signal")
)

// RuntimeError is a failure during evaluation.
type RuntimeError struct {
	Kind    error
	Message string
	Start   token.Position
	End     token.Position
	Context *Context
}

func newRuntimeError(kind error, start, end token.Position, ctx *Context, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, a...),
		Start:   start,
		End:     end,
		Context: ctx,
	}
}

func (e *RuntimeError) Error() string {
	if e.Start.IsValid() {
		return fmt.Sprintf("%s: %s", e.Start, e.Message)
	}
	return e.Message
}

func (e *RuntimeError) Unwrap() error { return e.Kind }

// Frame is one entry of a traceback.
type Frame struct {
	Name string
	Pos  token.Position
}

// Traceback returns the chain of contexts that led to the error, outermost
// first. Each frame holds the position at which execution was inside that
// context.
func (e *RuntimeError) Traceback() []Frame {
	var frames []Frame
	pos := e.Start
	for c := e.Context; c != nil; c = c.Caller {
		frames = append(frames, Frame{Name: c.Name, Pos: pos})
		pos = c.EntryPos
	}
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}
	return frames
}

// errorKind picks the sentinel an operator error belongs to.
func errorKind(err error) error {
	for _, kind := range []error{ErrDivisionByZero, ErrIndexOutOfRange, ErrIllegalOperation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrType
}
