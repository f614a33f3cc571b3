package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Number is an integer or a float. Integer arithmetic stays integral as long
// as the result is exact.
type Number struct {
	meta
	Int     int64
	Float   float64
	IsFloat bool
}

func NewInt(v int64) *Number     { return &Number{Int: v} }
func NewFloat(v float64) *Number { return &Number{Float: v, IsFloat: true} }

// NewBool returns the Number 1 for true and 0 for false.
func NewBool(b bool) *Number {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

func (n *Number) Kind() Kind { return NumberKind }

func (n *Number) Inspect() string {
	if !n.IsFloat {
		return strconv.FormatInt(n.Int, 10)
	}
	if n.Float == math.Trunc(n.Float) && math.Abs(n.Float) < 1e16 {
		return strconv.FormatFloat(n.Float, 'f', 1, 64)
	}
	return strconv.FormatFloat(n.Float, 'g', -1, 64)
}

func (n *Number) Truthy() bool {
	if n.IsFloat {
		return n.Float != 0
	}
	return n.Int != 0
}

func (n *Number) Copy() Value {
	c := *n
	return &c
}

func (n *Number) float() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

// IsZero reports whether n is integer or float zero.
func (n *Number) IsZero() bool { return !n.Truthy() }

func (n *Number) Binary(op BinaryOp, right Value) (Value, error) {
	r, ok := right.(*Number)
	if !ok {
		return sharedBinary(op, n, right)
	}
	if !n.IsFloat && !r.IsFloat {
		return intBinary(op, n.Int, r.Int, n, r)
	}
	return floatBinary(op, n.float(), r.float(), n, r)
}

func intBinary(op BinaryOp, a, b int64, left, right *Number) (Value, error) {
	switch op {
	case OpAdd:
		return NewInt(a + b), nil
	case OpSub:
		return NewInt(a - b), nil
	case OpMul:
		return NewInt(a * b), nil
	case OpDiv:
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		if a%b == 0 {
			return NewInt(a / b), nil
		}
		return NewFloat(float64(a) / float64(b)), nil
	case OpMod:
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return NewInt(a % b), nil
	case OpPow:
		if b >= 0 {
			return NewInt(intPow(a, b)), nil
		}
		return NewFloat(math.Pow(float64(a), float64(b))), nil
	case OpLt:
		return NewBool(a < b), nil
	case OpGt:
		return NewBool(a > b), nil
	case OpLe:
		return NewBool(a <= b), nil
	case OpGe:
		return NewBool(a >= b), nil
	case OpBitAnd:
		return NewInt(a & b), nil
	case OpBitOr:
		return NewInt(a | b), nil
	case OpShl, OpShr:
		if b < 0 {
			return nil, fmt.Errorf("%w: negative shift count %d", ErrIllegalOperation, b)
		}
		if op == OpShl {
			return NewInt(a << uint64(b)), nil
		}
		return NewInt(a >> uint64(b)), nil
	}
	return sharedBinary(op, left, right)
}

func floatBinary(op BinaryOp, a, b float64, left, right *Number) (Value, error) {
	switch op {
	case OpAdd:
		return NewFloat(a + b), nil
	case OpSub:
		return NewFloat(a - b), nil
	case OpMul:
		return NewFloat(a * b), nil
	case OpDiv:
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return NewFloat(a / b), nil
	case OpMod:
		if b == 0 {
			return nil, ErrDivisionByZero
		}
		return NewFloat(math.Mod(a, b)), nil
	case OpPow:
		return NewFloat(math.Pow(a, b)), nil
	case OpLt:
		return NewBool(a < b), nil
	case OpGt:
		return NewBool(a > b), nil
	case OpLe:
		return NewBool(a <= b), nil
	case OpGe:
		return NewBool(a >= b), nil
	}
	return sharedBinary(op, left, right)
}

// maxStringLen bounds the length in bytes of a string built by repetition.
const maxStringLen = 1 << 28

// String is an immutable text value.
type String struct {
	meta
	Value string
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) Kind() Kind      { return StringKind }
func (s *String) Inspect() string { return s.Value }
func (s *String) Truthy() bool    { return s.Value != "" }

func (s *String) Copy() Value {
	c := *s
	return &c
}

// Len returns the length in runes.
func (s *String) Len() int { return utf8.RuneCountInString(s.Value) }

func (s *String) Binary(op BinaryOp, right Value) (Value, error) {
	switch r := right.(type) {
	case *String:
		switch op {
		case OpAdd:
			return NewString(s.Value + r.Value), nil
		case OpLt:
			return NewBool(s.Value < r.Value), nil
		case OpGt:
			return NewBool(s.Value > r.Value), nil
		case OpLe:
			return NewBool(s.Value <= r.Value), nil
		case OpGe:
			return NewBool(s.Value >= r.Value), nil
		}
	case *Number:
		if op == OpMul && !r.IsFloat {
			if r.Int <= 0 || s.Value == "" {
				return NewString(""), nil
			}
			if r.Int > int64(maxStringLen/len(s.Value)) {
				return nil, fmt.Errorf("%w: repeating a string of %d bytes %d times exceeds %d bytes",
					ErrIllegalOperation, len(s.Value), r.Int, maxStringLen)
			}
			return NewString(strings.Repeat(s.Value, int(r.Int))), nil
		}
	}
	return sharedBinary(op, s, right)
}

// Null is the absence of a value.
type Null struct {
	meta
}

func NewNull() *Null { return &Null{} }

func (n *Null) Kind() Kind      { return NullKind }
func (n *Null) Inspect() string { return "null" }
func (n *Null) Truthy() bool    { return false }

func (n *Null) Copy() Value {
	c := *n
	return &c
}

func (n *Null) Binary(op BinaryOp, right Value) (Value, error) {
	return sharedBinary(op, n, right)
}
