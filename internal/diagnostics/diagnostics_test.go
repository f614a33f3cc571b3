package diagnostics

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/config"
	"github.com/funvibe/vela/internal/evaluator"
	"github.com/funvibe/vela/internal/token"
)

func runProgram(t *testing.T, src string) *evaluator.RuntimeError {
	t.Helper()
	node, err := ast.Decode("main.vela", []byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ctx := evaluator.NewRootContext(config.ProgramContextName)
	evaluator.RegisterBuiltins(ctx)
	res := evaluator.New().Run(node, ctx)
	if !res.IsError() {
		t.Fatalf("expected a runtime error, got %v", res.Value)
	}
	return res.Err
}

func TestFromError(t *testing.T) {
	pos := token.Position{File: "a.vela", Line: 3, Column: 7}
	tests := []struct {
		name string
		err  error
		code ErrorCode
		pos  token.Position
		msg  string
	}{
		{"decode", &ast.DecodeError{Pos: pos, Message: "node has no kind"}, ErrD001, pos, "node has no kind"},
		{"wrapped decode", fmt.Errorf("loading: %w", &ast.DecodeError{Pos: pos, Message: "x"}), ErrD001, pos, "x"},
		{"diagnostic", NewError(ErrC001, token.NoPos, "bad color"), ErrC001, token.NoPos, "bad color"},
		{"plain", errors.New("disk on fire"), ErrI001, token.NoPos, "disk on fire"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromError(tt.err)
			if d.Code != tt.code || d.Pos != tt.pos || d.Message != tt.msg {
				t.Errorf("FromError = %+v, want code %s pos %s msg %q", d, tt.code, tt.pos, tt.msg)
			}
		})
	}
}

func TestFromRuntimeError(t *testing.T) {
	rerr := runProgram(t, `
- {kind: func, name: f, body: {kind: var, name: missing}, auto_return: true}
- {kind: call, callee: {kind: var, name: f}}
`)
	d := FromError(rerr)
	if d.Code != ErrR001 {
		t.Fatalf("code = %s, want R001", d.Code)
	}
	if !errors.Is(d, evaluator.ErrUndefinedVariable) {
		t.Errorf("diagnostic does not unwrap to the runtime error kind: %v", d)
	}
	if len(d.Traceback) != 2 {
		t.Fatalf("traceback has %d frames, want 2", len(d.Traceback))
	}
	if d.Traceback[0].Name != config.ProgramContextName || d.Traceback[1].Name != "f" {
		t.Errorf("frames = %+v", d.Traceback)
	}
}

func TestPrinter(t *testing.T) {
	rerr := runProgram(t, `
- {kind: func, name: f, body: {kind: var, name: missing}, auto_return: true}
- {kind: call, callee: {kind: var, name: f}}
`)
	var buf bytes.Buffer
	Printer{}.Fprint(&buf, FromError(rerr))
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "Traceback (most recent call last):" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  File main.vela, line 3") || !strings.HasSuffix(lines[1], "in <program>") {
		t.Errorf("outer frame = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "in f") {
		t.Errorf("inner frame = %q", lines[2])
	}
	if lines[3] != "Runtime Error [R001]: 'missing' is not defined" {
		t.Errorf("message = %q", lines[3])
	}
	if strings.Contains(out, "\033[") {
		t.Error("uncolored printer emitted escape codes")
	}
}

func TestPrinterWithoutTraceback(t *testing.T) {
	d := NewError(ErrD001, token.Position{File: "x.yaml", Line: 2, Column: 1}, "node has no kind")
	var buf bytes.Buffer
	Printer{Color: true}.FprintAll(&buf, []*DiagnosticError{d})
	out := buf.String()
	if !strings.HasPrefix(out, "x.yaml:2:1: ") {
		t.Errorf("output does not start with the position: %q", out)
	}
	if !strings.Contains(out, "\033[") || !strings.HasSuffix(out, "node has no kind\n") {
		t.Errorf("unexpected output %q", out)
	}
	if got := d.Error(); got != "x.yaml:2:1: Decode Error [D001]: node has no kind" {
		t.Errorf("Error() = %q", got)
	}
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !ColorEnabled(config.ColorAlways, f) {
		t.Error("always should force color")
	}
	if ColorEnabled(config.ColorNever, f) {
		t.Error("never should disable color")
	}
	if ColorEnabled(config.ColorAuto, f) {
		t.Error("auto should not color a regular file")
	}
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(config.ColorAuto, os.Stdout) {
		t.Error("NO_COLOR should disable auto color")
	}
}
