package evaluator

import (
	"github.com/funvibe/vela/internal/token"
)

// BinaryOp is the closed set of binary operations a Value can implement.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpShl
	OpShr
)

var opSymbols = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpPow:    "^",
	OpEq:     "==",
	OpNe:     "!=",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpAnd:    "and",
	OpOr:     "or",
	OpBitAnd: "&",
	OpBitOr:  "|",
	OpShl:    "<<",
	OpShr:    ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return "?"
}

var binaryOps = map[token.TokenType]BinaryOp{
	token.PLUS:        OpAdd,
	token.MINUS:       OpSub,
	token.MUL:         OpMul,
	token.DIV:         OpDiv,
	token.MODULO:      OpMod,
	token.POW:         OpPow,
	token.EE:          OpEq,
	token.NE:          OpNe,
	token.LT:          OpLt,
	token.GT:          OpGt,
	token.LTE:         OpLe,
	token.GTE:         OpGe,
	token.LOGIC_AND:   OpBitAnd,
	token.LOGIC_OR:    OpBitOr,
	token.LEFT_SHIFT:  OpShl,
	token.RIGHT_SHIFT: OpShr,
}

// binaryOpFor resolves an operator token. Compound assignment tokens
// resolve to their base operator.
func binaryOpFor(tok token.Token) (BinaryOp, bool) {
	switch {
	case tok.Is(token.KeywordAnd):
		return OpAnd, true
	case tok.Is(token.KeywordOr):
		return OpOr, true
	}
	op, ok := binaryOps[tok.Type.Base()]
	return op, ok
}

// sharedBinary implements the operations every kind supports: equality and
// logical and/or. Anything else is illegal.
func sharedBinary(op BinaryOp, left, right Value) (Value, error) {
	switch op {
	case OpEq:
		return NewBool(valuesEqual(left, right)), nil
	case OpNe:
		return NewBool(!valuesEqual(left, right)), nil
	case OpAnd:
		return NewBool(left.Truthy() && right.Truthy()), nil
	case OpOr:
		return NewBool(left.Truthy() || right.Truthy()), nil
	}
	return nil, ErrIllegalOperation
}

func valuesEqual(left, right Value) bool {
	switch l := left.(type) {
	case *Number:
		r, ok := right.(*Number)
		if !ok {
			return false
		}
		if !l.IsFloat && !r.IsFloat {
			return l.Int == r.Int
		}
		return l.float() == r.float()
	case *String:
		r, ok := right.(*String)
		return ok && l.Value == r.Value
	case *List:
		r, ok := right.(*List)
		if !ok {
			return false
		}
		if l.store == r.store {
			return true
		}
		if l.Len() != r.Len() {
			return false
		}
		for i, el := range l.store.items {
			if !valuesEqual(el, r.store.items[i]) {
				return false
			}
		}
		return true
	case *Null:
		_, ok := right.(*Null)
		return ok
	case *Function:
		r, ok := right.(*Function)
		return ok && l.Body == r.Body && l.Closure == r.Closure
	case *Builtin:
		r, ok := right.(*Builtin)
		return ok && l.Name == r.Name
	case *StructDefinition:
		r, ok := right.(*StructDefinition)
		return ok && l.Body == r.Body && l.Closure == r.Closure
	case *StructInstance:
		r, ok := right.(*StructInstance)
		return ok && l.ID == r.ID
	}
	return false
}

// bitwiseNot implements the unary ~ operator, defined for integers only.
func bitwiseNot(v Value) (Value, error) {
	if n, ok := v.(*Number); ok && !n.IsFloat {
		return NewInt(^n.Int), nil
	}
	return nil, ErrIllegalOperation
}

// intPow computes base^exp for a non-negative exponent by squaring.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
