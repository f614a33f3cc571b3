package evaluator

import "github.com/funvibe/vela/internal/token"

// Signal tags how evaluation of a step ended.
type Signal uint8

const (
	SignalNone Signal = iota
	SignalReturn
	SignalContinue
	SignalBreak
	SignalError
)

func (s Signal) String() string {
	switch s {
	case SignalReturn:
		return "return"
	case SignalContinue:
		return "continue"
	case SignalBreak:
		return "break"
	case SignalError:
		return "error"
	}
	return "none"
}

// Result is the outcome of evaluating a node. Exactly one of the following
// holds: the step completed with Value (SignalNone), a control-flow signal is
// unwinding (Return carries Value), or Err is set (SignalError).
type Result struct {
	Value  Value
	Signal Signal
	Err    *RuntimeError
	// Span locates the statement that raised a control-flow signal.
	Span token.Span
}

func Ok(v Value) Result     { return Result{Value: v} }
func Return(v Value) Result { return Result{Value: v, Signal: SignalReturn} }
func Continue() Result      { return Result{Signal: SignalContinue} }
func Break() Result         { return Result{Signal: SignalBreak} }

func Fail(err *RuntimeError) Result {
	return Result{Signal: SignalError, Err: err}
}

// ShouldReturn reports whether the enclosing construct must stop and hand
// the result upward.
func (r Result) ShouldReturn() bool { return r.Signal != SignalNone }

func (r Result) IsOk() bool    { return r.Signal == SignalNone }
func (r Result) IsError() bool { return r.Signal == SignalError }

// Register merges inner into r. It returns inner's value when inner
// completed normally; otherwise r takes over inner's signal and the return
// value is nil.
func (r *Result) Register(inner Result) Value {
	if inner.ShouldReturn() {
		*r = inner
		return nil
	}
	return inner.Value
}

// Unwrap converts the result to Go's value/error pair. Error is non-nil
// only for SignalError.
func (r Result) Unwrap() (Value, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value, nil
}

func (r Result) at(span token.Span) Result {
	r.Span = span
	return r
}
