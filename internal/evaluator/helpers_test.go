package evaluator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/config"
)

// program joins YAML lines into an AST document.
func program(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

type runResult struct {
	res Result
	ctx *Context
	out string
}

func mustDecode(t *testing.T, src string) ast.Node {
	t.Helper()
	node, err := ast.Decode("test.vela", []byte(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return node
}

func run(t *testing.T, src string, opts ...Option) runResult {
	t.Helper()
	node := mustDecode(t, src)
	var out bytes.Buffer
	e := New(append([]Option{WithOutput(&out)}, opts...)...)
	ctx := NewRootContext(config.ProgramContextName)
	RegisterBuiltins(ctx)
	res := e.Run(node, ctx)
	return runResult{res: res, ctx: ctx, out: out.String()}
}

// mustRun runs src and fails the test on a runtime error.
func mustRun(t *testing.T, src string) runResult {
	t.Helper()
	r := run(t, src)
	if r.res.IsError() {
		t.Fatalf("unexpected runtime error: %v", r.res.Err)
	}
	return r
}

// runErr runs src and expects a runtime error of the given kind.
func runErr(t *testing.T, src string, kind error, opts ...Option) *RuntimeError {
	t.Helper()
	r := run(t, src, opts...)
	if !r.res.IsError() {
		t.Fatalf("expected %v error, got %s", kind, describe(r.res))
	}
	if !errors.Is(r.res.Err, kind) {
		t.Fatalf("expected %v error, got %v (%v)", kind, r.res.Err.Kind, r.res.Err)
	}
	return r.res.Err
}

func describe(r Result) string {
	if r.Value == nil {
		return r.Signal.String()
	}
	return r.Signal.String() + " " + r.Value.Inspect()
}

func lookup(t *testing.T, ctx *Context, name string) Value {
	t.Helper()
	v, ok := ctx.Lookup(name)
	if !ok {
		t.Fatalf("%q is not bound", name)
	}
	return v
}

func expectInspect(t *testing.T, ctx *Context, name, want string) {
	t.Helper()
	if got := lookup(t, ctx, name).Inspect(); got != want {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func member(t *testing.T, ctx *Context, inst, name string) Value {
	t.Helper()
	s, ok := lookup(t, ctx, inst).(*StructInstance)
	if !ok {
		t.Fatalf("%q is not a struct instance", inst)
	}
	v, ok := s.Member(name)
	if !ok {
		t.Fatalf("%s has no member %q", inst, name)
	}
	return v
}
