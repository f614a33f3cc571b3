package ast

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/vela/internal/token"
)

func decode(t *testing.T, src string) Node {
	t.Helper()
	n, err := Decode("test.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Decode(%q): %v", src, err)
	}
	return n
}

func TestDecodeLiterals(t *testing.T) {
	tests := []struct {
		src   string
		check func(Node) bool
	}{
		{"42", func(n Node) bool { l, ok := n.(*NumberLiteral); return ok && !l.IsFloat && l.Int == 42 }},
		{"0x10", func(n Node) bool { l, ok := n.(*NumberLiteral); return ok && l.Int == 16 }},
		{"2.5", func(n Node) bool { l, ok := n.(*NumberLiteral); return ok && l.IsFloat && l.Float == 2.5 }},
		{"hello", func(n Node) bool { l, ok := n.(*StringLiteral); return ok && l.Value == "hello" }},
		{`"42"`, func(n Node) bool { l, ok := n.(*StringLiteral); return ok && l.Value == "42" }},
		{"{kind: string, value: 7}", func(n Node) bool { l, ok := n.(*StringLiteral); return ok && l.Value == "7" }},
		{"{kind: number, value: 7}", func(n Node) bool { l, ok := n.(*NumberLiteral); return ok && l.Int == 7 }},
		{"{kind: list, items: [1, a]}", func(n Node) bool { l, ok := n.(*ListLiteral); return ok && len(l.Elements) == 2 }},
		{"{kind: list}", func(n Node) bool { l, ok := n.(*ListLiteral); return ok && len(l.Elements) == 0 }},
		{"[1, 2, 3]", func(n Node) bool { b, ok := n.(*Block); return ok && len(b.Statements) == 3 }},
		{"", func(n Node) bool { b, ok := n.(*Block); return ok && len(b.Statements) == 0 }},
	}
	for _, tt := range tests {
		if n := decode(t, tt.src); !tt.check(n) {
			t.Errorf("Decode(%q) = %#v", tt.src, n)
		}
	}
}

func TestDecodeOperators(t *testing.T) {
	n := decode(t, `{kind: binary, op: "&&", left: 1, right: {kind: unary, op: "-", operand: 2}}`)
	bin, ok := n.(*BinaryOp)
	if !ok {
		t.Fatalf("got %T", n)
	}
	if !bin.Op.Is(token.KeywordAnd) {
		t.Errorf("&& decoded as %+v", bin.Op)
	}
	un, ok := bin.Right.(*UnaryOp)
	if !ok || un.Op.Type != token.MINUS {
		t.Errorf("right operand = %#v", bin.Right)
	}

	re := decode(t, `{kind: reassign, name: x, op: "<<=", value: 1}`).(*VarReassign)
	if re.Op.Type != token.LEFT_SHIFT_EQ || !re.Op.IsCompound() || re.Op.Type.Base() != token.LEFT_SHIFT {
		t.Errorf("<<= decoded as %+v", re.Op)
	}

	plain := decode(t, `{kind: reassign, name: x, value: 1}`).(*VarReassign)
	if plain.Op.Type != token.EQ {
		t.Errorf("default reassign op = %+v", plain.Op)
	}

	notEq := decode(t, `{kind: reassign, name: x, op: "~="}`).(*VarReassign)
	if notEq.Value != nil || notEq.Op.Type != token.LOGIC_NOT_EQ {
		t.Errorf("~= decoded as %+v", notEq)
	}
}

func TestDecodeStatements(t *testing.T) {
	n := decode(t, `
- {kind: assign, name: limit, value: 3, const: true}
- kind: for
  var: i
  from: 0
  to: {kind: var, name: limit}
  body: [{kind: var, name: i}]
  null: true
- kind: if
  cases:
    - {cond: 0, body: a}
    - {cond: 1, body: b}
  else: {body: c}
- kind: switch
  subject: limit
  cases:
    - {value: 3, body: three}
  default: other
- {kind: func, name: f, params: [a, b], body: {kind: var, name: a}, auto_return: true}
- {kind: member_assign, struct: p, member: x, op: "+=", value: 1}
- {kind: member_call, struct: p, member: area}
`)
	block, ok := n.(*Block)
	if !ok || len(block.Statements) != 7 {
		t.Fatalf("got %#v", n)
	}

	assign := block.Statements[0].(*VarAssign)
	if assign.Mutable || assign.Name.Lexeme != "limit" {
		t.Errorf("assign = %+v", assign)
	}

	loop := block.Statements[1].(*For)
	if loop.Var.Lexeme != "i" || loop.Step != nil || !loop.NullResult {
		t.Errorf("for = %+v", loop)
	}

	cond := block.Statements[2].(*If)
	if len(cond.Cases) != 2 || cond.Else == nil {
		t.Errorf("if = %+v", cond)
	}

	sw := block.Statements[3].(*Switch)
	if sw.Subject.Lexeme != "limit" || len(sw.Cases) != 1 || sw.Default == nil {
		t.Errorf("switch = %+v", sw)
	}

	fn := block.Statements[4].(*FuncDef)
	if fn.Name.Lexeme != "f" || len(fn.Params) != 2 || !fn.AutoReturn {
		t.Errorf("func = %+v", fn)
	}

	sr := block.Statements[5].(*StructReassign)
	if sr.Struct.Lexeme != "p" || sr.Member.Lexeme != "x" || sr.Op.Type != token.PLUS_EQ {
		t.Errorf("member_assign = %+v", sr)
	}

	if sc := block.Statements[6].(*StructCall); sc.Member.Lexeme != "area" || len(sc.Args) != 0 {
		t.Errorf("member_call = %+v", sc)
	}
}

func TestDecodeJSON(t *testing.T) {
	n := decode(t, `{"kind": "call", "callee": {"kind": "var", "name": "print"}, "args": [1, "two"]}`)
	call, ok := n.(*Call)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("got %#v", n)
	}
	if _, ok := call.Args[1].(*StringLiteral); !ok {
		t.Errorf("second arg = %T", call.Args[1])
	}
}

func TestDecodePositions(t *testing.T) {
	n := decode(t, "- {kind: var, name: a}\n- {kind: var, name: b}\n")
	second := n.(*Block).Statements[1]
	pos := second.Pos()
	if pos.File != "test.yaml" || pos.Line != 2 || pos.Column != 3 {
		t.Errorf("position = %s", pos)
	}
	if !pos.Before(second.End()) {
		t.Errorf("end %s is not after start %s", second.End(), pos)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"{name: x}", "node has no kind"},
		{"{kind: nope}", `unknown node kind "nope"`},
		{"{kind: var}", `missing "name"`},
		{`{kind: binary, op: "?", left: 1, right: 2}`, `unknown operator "?"`},
		{"{kind: number, value: abc}", "is not numeric"},
		{"{kind: reassign, name: x, op: \"+=\"}", "needs a value"},
		{"{kind: if, cases: []}", "non-empty cases"},
		{"{kind: func, params: x, body: 1}", "params must be a sequence"},
		{"{kind: assign, name: x, value: 1, const: maybe}", "must be a boolean"},
		{"true", "cannot be used as a node"},
	}
	for _, tt := range tests {
		_, err := Decode("bad.yaml", []byte(tt.src))
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("Decode(%q): expected a DecodeError, got %v", tt.src, err)
			continue
		}
		if !strings.Contains(de.Message, tt.want) {
			t.Errorf("Decode(%q): message %q does not contain %q", tt.src, de.Message, tt.want)
		}
		if de.Pos.File != "bad.yaml" || !de.Pos.IsValid() {
			t.Errorf("Decode(%q): position %s", tt.src, de.Pos)
		}
	}

	if _, err := Decode("bad.yaml", []byte("{kind: [")); err == nil {
		t.Error("expected a YAML syntax error")
	}
}

func TestWalk(t *testing.T) {
	n := decode(t, `
- {kind: assign, name: x, value: {kind: binary, op: "+", left: 1, right: 2}}
- {kind: func, name: f, body: {kind: var, name: x}}
`)
	var kinds []string
	Walk(n, func(n Node) bool {
		switch n.(type) {
		case *Block:
			kinds = append(kinds, "block")
		case *VarAssign:
			kinds = append(kinds, "assign")
		case *BinaryOp:
			kinds = append(kinds, "binary")
		case *NumberLiteral:
			kinds = append(kinds, "number")
		case *FuncDef:
			kinds = append(kinds, "func")
			return false
		case *VarAccess:
			kinds = append(kinds, "var")
		}
		return true
	})
	want := "block assign binary number number func"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("walk order = %q, want %q", got, want)
	}
}
