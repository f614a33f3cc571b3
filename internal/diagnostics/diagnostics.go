// Package diagnostics turns decode, configuration and runtime failures into
// uniform, printable errors.
package diagnostics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/config"
	"github.com/funvibe/vela/internal/evaluator"
	"github.com/funvibe/vela/internal/token"
	"github.com/mattn/go-isatty"
)

// ErrorCode classifies a diagnostic.
type ErrorCode string

const (
	ErrD001 ErrorCode = "D001" // malformed AST document
	ErrC001 ErrorCode = "C001" // invalid configuration
	ErrR001 ErrorCode = "R001" // runtime error
	ErrI001 ErrorCode = "I001" // I/O or other host failure
)

var codeTitles = map[ErrorCode]string{
	ErrD001: "Decode Error",
	ErrC001: "Config Error",
	ErrR001: "Runtime Error",
	ErrI001: "Error",
}

// DiagnosticError is a positioned, coded error ready for display.
type DiagnosticError struct {
	Code      ErrorCode
	Pos       token.Position
	Message   string
	Traceback []evaluator.Frame
	Err       error
}

func NewError(code ErrorCode, pos token.Position, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Pos: pos, Message: msg}
}

// FromError wraps err, picking the code and position from its concrete type.
func FromError(err error) *DiagnosticError {
	var (
		diag    *DiagnosticError
		runtime *evaluator.RuntimeError
		decode  *ast.DecodeError
	)
	switch {
	case errors.As(err, &diag):
		return diag
	case errors.As(err, &runtime):
		return &DiagnosticError{
			Code:      ErrR001,
			Pos:       runtime.Start,
			Message:   runtime.Message,
			Traceback: runtime.Traceback(),
			Err:       err,
		}
	case errors.As(err, &decode):
		return &DiagnosticError{Code: ErrD001, Pos: decode.Pos, Message: decode.Message, Err: err}
	}
	return &DiagnosticError{Code: ErrI001, Message: err.Error(), Err: err}
}

func (e *DiagnosticError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s [%s]: %s", e.Pos, codeTitles[e.Code], e.Code, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", codeTitles[e.Code], e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error { return e.Err }

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiDim   = "\033[2m"
)

// Printer writes diagnostics in a traceback-first layout:
//
//	Traceback (most recent call last):
//	  File main.vela, line 4, column 3, in <program>
//	  File main.vela, line 1, column 20, in f
//	Runtime Error [R001]: 'x' is not defined
type Printer struct {
	Color bool
}

func (p Printer) paint(code, s string) string {
	if !p.Color {
		return s
	}
	return code + s + ansiReset
}

// Fprint writes d to w.
func (p Printer) Fprint(w io.Writer, d *DiagnosticError) {
	var b strings.Builder
	if len(d.Traceback) > 0 {
		b.WriteString(p.paint(ansiDim, "Traceback (most recent call last):"))
		b.WriteByte('\n')
		for _, f := range d.Traceback {
			b.WriteString(p.paint(ansiDim, fmt.Sprintf("  File %s, line %d, column %d, in %s",
				fileName(f.Pos), f.Pos.Line, f.Pos.Column, f.Name)))
			b.WriteByte('\n')
		}
	} else if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(p.paint(ansiBold+ansiRed, fmt.Sprintf("%s [%s]", codeTitles[d.Code], d.Code)))
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteByte('\n')
	io.WriteString(w, b.String())
}

// FprintAll writes every diagnostic in order.
func (p Printer) FprintAll(w io.Writer, diags []*DiagnosticError) {
	for _, d := range diags {
		p.Fprint(w, d)
	}
}

func fileName(pos token.Position) string {
	if pos.File == "" {
		return "<input>"
	}
	return pos.File
}

// ColorEnabled resolves a color mode for output written to f. In auto mode
// color is used only on a terminal, honoring NO_COLOR and TERM=dumb.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
