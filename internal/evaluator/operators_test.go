package evaluator

import (
	"errors"
	"math"
	"testing"

	"github.com/funvibe/vela/internal/token"
)

func ints(vs ...int64) *List {
	items := make([]Value, len(vs))
	for i, v := range vs {
		items[i] = NewInt(v)
	}
	return NewList(items)
}

func TestBinary(t *testing.T) {
	tests := []struct {
		name    string
		left    Value
		op      BinaryOp
		right   Value
		want    string
		wantErr error
	}{
		{"int add", NewInt(2), OpAdd, NewInt(3), "5", nil},
		{"int sub", NewInt(2), OpSub, NewInt(3), "-1", nil},
		{"mixed add", NewFloat(1.5), OpAdd, NewInt(1), "2.5", nil},
		{"float stays float", NewFloat(2), OpMul, NewInt(2), "4.0", nil},
		{"exact division", NewInt(6), OpDiv, NewInt(3), "2", nil},
		{"inexact division", NewInt(7), OpDiv, NewInt(2), "3.5", nil},
		{"modulo", NewInt(7), OpMod, NewInt(3), "1", nil},
		{"float modulo", NewFloat(7.5), OpMod, NewInt(2), "1.5", nil},
		{"power", NewInt(2), OpPow, NewInt(10), "1024", nil},
		{"negative power", NewInt(2), OpPow, NewInt(-1), "0.5", nil},
		{"less", NewInt(1), OpLt, NewFloat(1.5), "1", nil},
		{"greater or equal", NewInt(1), OpGe, NewInt(2), "0", nil},
		{"int equals float", NewInt(1), OpEq, NewFloat(1), "1", nil},
		{"number not string", NewInt(1), OpEq, NewString("1"), "0", nil},
		{"bit and", NewInt(5), OpBitAnd, NewInt(3), "1", nil},
		{"bit or", NewInt(5), OpBitOr, NewInt(2), "7", nil},
		{"shift left", NewInt(1), OpShl, NewInt(4), "16", nil},
		{"shift right", NewInt(16), OpShr, NewInt(2), "4", nil},
		{"and", NewInt(1), OpAnd, NewString(""), "0", nil},
		{"or", NewNull(), OpOr, NewString("x"), "1", nil},

		{"division by zero", NewInt(1), OpDiv, NewInt(0), "", ErrDivisionByZero},
		{"float division by zero", NewFloat(1), OpDiv, NewFloat(0), "", ErrDivisionByZero},
		{"modulo by zero", NewInt(1), OpMod, NewInt(0), "", ErrDivisionByZero},
		{"float bit and", NewFloat(1.5), OpBitAnd, NewInt(1), "", ErrIllegalOperation},
		{"negative shift", NewInt(1), OpShl, NewInt(-1), "", ErrIllegalOperation},
		{"number plus string", NewInt(1), OpAdd, NewString("a"), "", ErrIllegalOperation},

		{"concat", NewString("a"), OpAdd, NewString("b"), "ab", nil},
		{"repeat", NewString("ab"), OpMul, NewInt(3), "ababab", nil},
		{"repeat zero", NewString("ab"), OpMul, NewInt(0), "", nil},
		{"repeat negative", NewString("ab"), OpMul, NewInt(-2), "", nil},
		{"repeat empty many times", NewString(""), OpMul, NewInt(math.MaxInt64), "", nil},
		{"repeat overflow", NewString("ab"), OpMul, NewInt(math.MaxInt64), "", ErrIllegalOperation},
		{"repeat past limit", NewString("ab"), OpMul, NewInt(maxStringLen/2 + 1), "", ErrIllegalOperation},
		{"string less", NewString("a"), OpLt, NewString("b"), "1", nil},
		{"string equals", NewString("a"), OpEq, NewString("a"), "1", nil},
		{"string minus", NewString("a"), OpSub, NewString("b"), "", ErrIllegalOperation},
		{"repeat by float", NewString("a"), OpMul, NewFloat(2), "", ErrIllegalOperation},

		{"list append", ints(1, 2), OpAdd, NewInt(3), "[1, 2, 3]", nil},
		{"list concat", ints(1), OpMul, ints(2, 3), "[1, 2, 3]", nil},
		{"list remove", ints(1, 2, 3), OpSub, NewInt(1), "[1, 3]", nil},
		{"list index", ints(1, 2, 3), OpDiv, NewInt(0), "1", nil},
		{"list negative index", ints(1, 2, 3), OpDiv, NewInt(-1), "3", nil},
		{"list equals", ints(1, 2), OpEq, ints(1, 2), "1", nil},
		{"list index out of range", ints(1), OpDiv, NewInt(5), "", ErrIndexOutOfRange},
		{"list remove out of range", ints(1), OpSub, NewInt(1), "", ErrIndexOutOfRange},
		{"list less", ints(1), OpLt, ints(2), "", ErrIllegalOperation},

		{"null equals null", NewNull(), OpEq, NewNull(), "1", nil},
		{"null plus", NewNull(), OpAdd, NewInt(1), "", ErrIllegalOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.left.Binary(tt.op, tt.right)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("%s %s %s: error = %v, want %v", tt.left.Inspect(), tt.op, tt.right.Inspect(), err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s %s %s: unexpected error %v", tt.left.Inspect(), tt.op, tt.right.Inspect(), err)
			}
			if got.Inspect() != tt.want {
				t.Errorf("%s %s %s = %s, want %s", tt.left.Inspect(), tt.op, tt.right.Inspect(), got.Inspect(), tt.want)
			}
		})
	}
}

func TestBinaryDoesNotMutateOperands(t *testing.T) {
	l := ints(1, 2)
	if _, err := l.Binary(OpAdd, NewInt(3)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Binary(OpSub, NewInt(0)); err != nil {
		t.Fatal(err)
	}
	if got := l.Inspect(); got != "[1, 2]" {
		t.Errorf("operand changed to %s", got)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{NewInt(0), false},
		{NewInt(-1), true},
		{NewFloat(0), false},
		{NewFloat(0.1), true},
		{NewString(""), false},
		{NewString("x"), true},
		{NewList(nil), false},
		{ints(0), true},
		{NewNull(), false},
		{&Function{}, true},
		{NewBuiltin("b", nil, nil), true},
		{&StructDefinition{Name: "S"}, true},
	}
	for _, tt := range tests {
		if got := tt.value.Truthy(); got != tt.want {
			t.Errorf("%s (%s).Truthy() = %v, want %v", tt.value.Inspect(), tt.value.Kind(), got, tt.want)
		}
	}
}

func TestCopySharesListStorage(t *testing.T) {
	l := ints(1)
	c := l.Copy().(*List)
	c.Append(NewInt(2))
	if l.Len() != 2 {
		t.Errorf("expected shared storage, original has %d elements", l.Len())
	}
}

func TestCopyIsIndependentForScalars(t *testing.T) {
	n := NewInt(1)
	c := n.Copy()
	c.SetPos(n.Start(), n.End())
	c.(*Number).Int = 5
	if n.Int != 1 {
		t.Errorf("copy aliased the original: %d", n.Int)
	}
}

func TestNumberInspect(t *testing.T) {
	tests := []struct {
		n    *Number
		want string
	}{
		{NewInt(42), "42"},
		{NewFloat(3), "3.0"},
		{NewFloat(2.25), "2.25"},
		{NewFloat(1e20), "1e+20"},
		{NewFloat(-0.5), "-0.5"},
	}
	for _, tt := range tests {
		if got := tt.n.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %s, want %s", got, tt.want)
		}
	}
}

func TestUnary(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		value   Value
		want    string
		wantErr error
	}{
		{"negate int", "-", NewInt(3), "-3", nil},
		{"negate float", "-", NewFloat(1.5), "-1.5", nil},
		{"identity", "+", NewInt(3), "3", nil},
		{"not zero", "not", NewInt(0), "1", nil},
		{"not string", "not", NewString("x"), "0", nil},
		{"bitwise not", "~", NewInt(0), "-1", nil},
		{"bitwise not float", "~", NewFloat(1), "", ErrIllegalOperation},
		{"negate list", "-", ints(1), "", ErrIllegalOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := token.LookupOperator(tt.op)
			if !ok {
				t.Fatalf("unknown operator %q", tt.op)
			}
			got, err := unary(op, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Inspect() != tt.want {
				t.Errorf("%s%s = %s, want %s", tt.op, tt.value.Inspect(), got.Inspect(), tt.want)
			}
		})
	}
}
