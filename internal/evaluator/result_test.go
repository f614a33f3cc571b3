package evaluator

import (
	"errors"
	"testing"

	"github.com/funvibe/vela/internal/token"
)

func TestResultRegister(t *testing.T) {
	var res Result
	if v := res.Register(Ok(NewInt(1))); v == nil || v.Inspect() != "1" {
		t.Fatalf("Register(Ok) = %v", v)
	}
	if res.ShouldReturn() {
		t.Fatal("an ok inner result must not stop evaluation")
	}

	if v := res.Register(Break()); v != nil {
		t.Errorf("Register(Break) = %v, want nil", v)
	}
	if res.Signal != SignalBreak || !res.ShouldReturn() {
		t.Errorf("signal = %s, want break", res.Signal)
	}

	res = Result{}
	res.Register(Return(NewString("r")))
	if res.Signal != SignalReturn || res.Value.Inspect() != "r" {
		t.Errorf("return not carried: %s", describe(res))
	}
}

func TestResultTags(t *testing.T) {
	err := newRuntimeError(ErrType, token.NoPos, token.NoPos, nil, "boom")
	tests := []struct {
		name   string
		res    Result
		ok     bool
		failed bool
	}{
		{"ok", Ok(NewNull()), true, false},
		{"return", Return(NewNull()), false, false},
		{"continue", Continue(), false, false},
		{"break", Break(), false, false},
		{"error", Fail(err), false, true},
	}
	for _, tt := range tests {
		if tt.res.IsOk() != tt.ok || tt.res.IsError() != tt.failed || tt.res.ShouldReturn() == tt.ok {
			t.Errorf("%s: IsOk=%v IsError=%v ShouldReturn=%v", tt.name, tt.res.IsOk(), tt.res.IsError(), tt.res.ShouldReturn())
		}
	}
}

func TestResultUnwrap(t *testing.T) {
	v, err := Ok(NewInt(3)).Unwrap()
	if err != nil || v.Inspect() != "3" {
		t.Errorf("Unwrap(Ok) = %v, %v", v, err)
	}
	_, err = Fail(newRuntimeError(ErrDivisionByZero, token.NoPos, token.NoPos, nil, "x")).Unwrap()
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Unwrap(Fail) error = %v", err)
	}
}
