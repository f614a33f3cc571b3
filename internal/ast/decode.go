package ast

import (
	"fmt"
	"os"
	"strconv"

	"github.com/funvibe/vela/internal/token"
	"gopkg.in/yaml.v3"
)

// Node kinds used by AST documents.
const (
	KindNumber       = "number"
	KindString       = "string"
	KindList         = "list"
	KindBlock        = "block"
	KindBinary       = "binary"
	KindUnary        = "unary"
	KindVar          = "var"
	KindAssign       = "assign"
	KindReassign     = "reassign"
	KindDelete       = "delete"
	KindIf           = "if"
	KindFor          = "for"
	KindWhile        = "while"
	KindDoWhile      = "do_while"
	KindForEach      = "foreach"
	KindSwitch       = "switch"
	KindFunc         = "func"
	KindCall         = "call"
	KindReturn       = "return"
	KindContinue     = "continue"
	KindBreak        = "break"
	KindStruct       = "struct"
	KindMember       = "member"
	KindMemberAssign = "member_assign"
	KindMemberCall   = "member_call"
)

// DecodeError reports a malformed AST document.
type DecodeError struct {
	Pos     token.Position
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at %s: %s", e.Pos, e.Message)
}

// DecodeFile reads and decodes an AST document from path.
func DecodeFile(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode turns a YAML (or JSON) AST document into a syntax tree. Every node
// is a mapping with a "kind" key; a sequence in node position is a block and
// plain numeric or string scalars are literals. Positions are taken from the
// document, file names from file.
//
//	kind: block
//	body:
//	  - {kind: assign, name: x, value: 5}
//	  - {kind: call, callee: {kind: var, name: print}, args: [{kind: var, name: x}]}
func Decode(file string, data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return &Block{Location: At(token.Position{File: file, Line: 1, Column: 1}, token.Position{File: file, Line: 1, Column: 1})}, nil
	}
	d := &decoder{file: file}
	return d.node(doc.Content[0])
}

type decoder struct {
	file string
}

func (d *decoder) pos(n *yaml.Node) token.Position {
	return token.Position{File: d.file, Line: n.Line, Column: n.Column}
}

// end approximates the position just past n using its last descendant.
func (d *decoder) end(n *yaml.Node) token.Position {
	for len(n.Content) > 0 {
		n = n.Content[len(n.Content)-1]
	}
	return token.Position{File: d.file, Line: n.Line, Column: n.Column + len(n.Value)}
}

func (d *decoder) loc(n *yaml.Node) Location {
	return At(d.pos(n), d.end(n))
}

func (d *decoder) errorf(n *yaml.Node, format string, a ...interface{}) error {
	return &DecodeError{Pos: d.pos(n), Message: fmt.Sprintf(format, a...)}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

type fields struct {
	owner *yaml.Node
	m     map[string]*yaml.Node
}

func (d *decoder) fields(n *yaml.Node) (fields, error) {
	f := fields{owner: n, m: make(map[string]*yaml.Node)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if key.Kind != yaml.ScalarNode {
			return f, d.errorf(key, "mapping keys must be scalars")
		}
		f.m[key.Value] = resolve(n.Content[i+1])
	}
	return f, nil
}

func (d *decoder) node(n *yaml.Node) (Node, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.SequenceNode:
		stmts, err := d.nodes(n)
		if err != nil {
			return nil, err
		}
		return &Block{Location: d.loc(n), Statements: stmts}, nil
	case yaml.ScalarNode:
		return d.scalar(n)
	case yaml.MappingNode:
		// handled below
	default:
		return nil, d.errorf(n, "unexpected YAML node")
	}

	f, err := d.fields(n)
	if err != nil {
		return nil, err
	}
	kindNode, ok := f.m["kind"]
	if !ok {
		return nil, d.errorf(n, "node has no kind")
	}
	loc := d.loc(n)

	switch kind := kindNode.Value; kind {
	case KindNumber, KindString:
		v, ok := f.m["value"]
		if !ok {
			return nil, d.errorf(n, "%s literal has no value", kind)
		}
		if kind == KindString {
			return &StringLiteral{Location: loc, Token: d.tok(token.STRING, v), Value: v.Value}, nil
		}
		lit, err := d.scalar(v)
		if err != nil {
			return nil, err
		}
		if _, isNum := lit.(*NumberLiteral); !isNum {
			return nil, d.errorf(v, "number literal %q is not numeric", v.Value)
		}
		return lit, nil

	case KindList:
		elems, err := d.optNodes(f, "items")
		if err != nil {
			return nil, err
		}
		return &ListLiteral{Location: loc, Elements: elems}, nil

	case KindBlock:
		stmts, err := d.optNodes(f, "body")
		if err != nil {
			return nil, err
		}
		return &Block{Location: loc, Statements: stmts}, nil

	case KindBinary:
		op, err := d.op(f, "op", "")
		if err != nil {
			return nil, err
		}
		left, err := d.child(f, "left")
		if err != nil {
			return nil, err
		}
		right, err := d.child(f, "right")
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Location: loc, Left: left, Op: op, Right: right}, nil

	case KindUnary:
		op, err := d.op(f, "op", "")
		if err != nil {
			return nil, err
		}
		operand, err := d.child(f, "operand")
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Location: loc, Op: op, Operand: operand}, nil

	case KindVar:
		name, err := d.ident(f, "name")
		if err != nil {
			return nil, err
		}
		return &VarAccess{Location: loc, Name: name}, nil

	case KindAssign:
		name, err := d.ident(f, "name")
		if err != nil {
			return nil, err
		}
		value, err := d.child(f, "value")
		if err != nil {
			return nil, err
		}
		isConst, err := d.flag(f, "const")
		if err != nil {
			return nil, err
		}
		return &VarAssign{Location: loc, Name: name, Value: value, Mutable: !isConst}, nil

	case KindReassign:
		name, err := d.ident(f, "name")
		if err != nil {
			return nil, err
		}
		op, err := d.op(f, "op", "=")
		if err != nil {
			return nil, err
		}
		value, err := d.optChild(f, "value")
		if err != nil {
			return nil, err
		}
		if value == nil && op.Type != token.LOGIC_NOT_EQ {
			return nil, d.errorf(n, "reassign with %q needs a value", op.Lexeme)
		}
		return &VarReassign{Location: loc, Name: name, Op: op, Value: value}, nil

	case KindDelete:
		name, err := d.ident(f, "name")
		if err != nil {
			return nil, err
		}
		return &Delete{Location: loc, Name: name}, nil

	case KindIf:
		return d.ifNode(n, f, loc)

	case KindFor:
		v, err := d.ident(f, "var")
		if err != nil {
			return nil, err
		}
		from, err := d.child(f, "from")
		if err != nil {
			return nil, err
		}
		to, err := d.child(f, "to")
		if err != nil {
			return nil, err
		}
		step, err := d.optChild(f, "step")
		if err != nil {
			return nil, err
		}
		body, null, err := d.body(f)
		if err != nil {
			return nil, err
		}
		return &For{Location: loc, Var: v, From: from, To: to, Step: step, Body: body, NullResult: null}, nil

	case KindWhile, KindDoWhile:
		cond, err := d.child(f, "cond")
		if err != nil {
			return nil, err
		}
		body, null, err := d.body(f)
		if err != nil {
			return nil, err
		}
		if kind == KindWhile {
			return &While{Location: loc, Condition: cond, Body: body, NullResult: null}, nil
		}
		return &DoWhile{Location: loc, Body: body, Condition: cond, NullResult: null}, nil

	case KindForEach:
		elem, err := d.ident(f, "element")
		if err != nil {
			return nil, err
		}
		list, err := d.ident(f, "list")
		if err != nil {
			return nil, err
		}
		body, null, err := d.body(f)
		if err != nil {
			return nil, err
		}
		return &ForEach{Location: loc, Element: elem, List: list, Body: body, NullResult: null}, nil

	case KindSwitch:
		return d.switchNode(f, loc)

	case KindFunc:
		return d.funcNode(f, loc)

	case KindCall:
		callee, err := d.child(f, "callee")
		if err != nil {
			return nil, err
		}
		args, err := d.optNodes(f, "args")
		if err != nil {
			return nil, err
		}
		return &Call{Location: loc, Callee: callee, Args: args}, nil

	case KindReturn:
		value, err := d.optChild(f, "value")
		if err != nil {
			return nil, err
		}
		return &Return{Location: loc, Value: value}, nil

	case KindContinue:
		return &Continue{Location: loc}, nil

	case KindBreak:
		return &Break{Location: loc}, nil

	case KindStruct:
		name, err := d.ident(f, "name")
		if err != nil {
			return nil, err
		}
		body, err := d.child(f, "body")
		if err != nil {
			return nil, err
		}
		return &StructDef{Location: loc, Name: name, Body: body}, nil

	case KindMember, KindMemberAssign, KindMemberCall:
		return d.memberNode(kind, n, f, loc)

	default:
		return nil, d.errorf(kindNode, "unknown node kind %q", kind)
	}
}

func (d *decoder) scalar(n *yaml.Node) (Node, error) {
	loc := d.loc(n)
	switch n.Tag {
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, d.errorf(n, "invalid integer %q", n.Value)
		}
		return &NumberLiteral{Location: loc, Token: d.tok(token.INT, n), Int: v}, nil
	case "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, d.errorf(n, "invalid float %q", n.Value)
		}
		return &NumberLiteral{Location: loc, Token: d.tok(token.FLOAT, n), Float: v, IsFloat: true}, nil
	case "!!str":
		return &StringLiteral{Location: loc, Token: d.tok(token.STRING, n), Value: n.Value}, nil
	}
	return nil, d.errorf(n, "scalar %q cannot be used as a node", n.Value)
}

func (d *decoder) tok(tt token.TokenType, n *yaml.Node) token.Token {
	return token.Token{Type: tt, Lexeme: n.Value, Start: d.pos(n), End: d.end(n)}
}

func (d *decoder) ident(f fields, key string) (token.Token, error) {
	n, ok := f.m[key]
	if !ok {
		return token.Token{}, d.errorf(f.owner, "missing %q", key)
	}
	if n.Kind != yaml.ScalarNode || n.Value == "" {
		return token.Token{}, d.errorf(n, "%q must be a name", key)
	}
	return d.tok(token.IDENTIFIER, n), nil
}

func (d *decoder) op(f fields, key, def string) (token.Token, error) {
	n, ok := f.m[key]
	if !ok {
		if def == "" {
			return token.Token{}, d.errorf(f.owner, "missing %q", key)
		}
		t, _ := token.LookupOperator(def)
		t.Start, t.End = d.pos(f.owner), d.pos(f.owner)
		return t, nil
	}
	t, ok := token.LookupOperator(n.Value)
	if !ok {
		return token.Token{}, d.errorf(n, "unknown operator %q", n.Value)
	}
	t.Start, t.End = d.pos(n), d.end(n)
	return t, nil
}

func (d *decoder) flag(f fields, key string) (bool, error) {
	n, ok := f.m[key]
	if !ok {
		return false, nil
	}
	var v bool
	if err := n.Decode(&v); err != nil {
		return false, d.errorf(n, "%q must be a boolean", key)
	}
	return v, nil
}

func (d *decoder) child(f fields, key string) (Node, error) {
	n, ok := f.m[key]
	if !ok {
		return nil, d.errorf(f.owner, "missing %q", key)
	}
	return d.node(n)
}

func (d *decoder) optChild(f fields, key string) (Node, error) {
	n, ok := f.m[key]
	if !ok || n.Tag == "!!null" {
		return nil, nil
	}
	return d.node(n)
}

func (d *decoder) nodes(seq *yaml.Node) ([]Node, error) {
	out := make([]Node, 0, len(seq.Content))
	for _, item := range seq.Content {
		n, err := d.node(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (d *decoder) optNodes(f fields, key string) ([]Node, error) {
	n, ok := f.m[key]
	if !ok {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "%q must be a sequence", key)
	}
	return d.nodes(n)
}

// body decodes the "body" and "null" keys shared by loops and branches.
func (d *decoder) body(f fields) (Node, bool, error) {
	body, err := d.child(f, "body")
	if err != nil {
		return nil, false, err
	}
	null, err := d.flag(f, "null")
	if err != nil {
		return nil, false, err
	}
	return body, null, nil
}

func (d *decoder) ifNode(n *yaml.Node, f fields, loc Location) (Node, error) {
	casesNode, ok := f.m["cases"]
	if !ok || casesNode.Kind != yaml.SequenceNode || len(casesNode.Content) == 0 {
		return nil, d.errorf(n, "if needs a non-empty cases sequence")
	}
	out := &If{Location: loc}
	for _, c := range casesNode.Content {
		cf, err := d.fields(resolve(c))
		if err != nil {
			return nil, err
		}
		cond, err := d.child(cf, "cond")
		if err != nil {
			return nil, err
		}
		body, null, err := d.body(cf)
		if err != nil {
			return nil, err
		}
		out.Cases = append(out.Cases, IfCase{Condition: cond, Body: body, NullResult: null})
	}
	if elseNode, ok := f.m["else"]; ok {
		ef, err := d.fields(elseNode)
		if err != nil {
			return nil, err
		}
		body, null, err := d.body(ef)
		if err != nil {
			return nil, err
		}
		out.Else = &ElseCase{Body: body, NullResult: null}
	}
	return out, nil
}

func (d *decoder) switchNode(f fields, loc Location) (Node, error) {
	subject, err := d.ident(f, "subject")
	if err != nil {
		return nil, err
	}
	out := &Switch{Location: loc, Subject: subject}
	if casesNode, ok := f.m["cases"]; ok {
		if casesNode.Kind != yaml.SequenceNode {
			return nil, d.errorf(casesNode, "switch cases must be a sequence")
		}
		for _, c := range casesNode.Content {
			cf, err := d.fields(resolve(c))
			if err != nil {
				return nil, err
			}
			value, err := d.child(cf, "value")
			if err != nil {
				return nil, err
			}
			body, err := d.child(cf, "body")
			if err != nil {
				return nil, err
			}
			out.Cases = append(out.Cases, SwitchCase{Value: value, Body: body})
		}
	}
	def, err := d.optChild(f, "default")
	if err != nil {
		return nil, err
	}
	out.Default = def
	return out, nil
}

func (d *decoder) funcNode(f fields, loc Location) (Node, error) {
	out := &FuncDef{Location: loc}
	if nameNode, ok := f.m["name"]; ok && nameNode.Value != "" {
		out.Name = d.tok(token.IDENTIFIER, nameNode)
	}
	if params, ok := f.m["params"]; ok {
		if params.Kind != yaml.SequenceNode {
			return nil, d.errorf(params, "params must be a sequence of names")
		}
		for _, p := range params.Content {
			if p.Kind != yaml.ScalarNode || p.Value == "" {
				return nil, d.errorf(p, "parameter must be a name")
			}
			out.Params = append(out.Params, d.tok(token.IDENTIFIER, p))
		}
	}
	body, err := d.child(f, "body")
	if err != nil {
		return nil, err
	}
	out.Body = body
	out.AutoReturn, err = d.flag(f, "auto_return")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) memberNode(kind string, n *yaml.Node, f fields, loc Location) (Node, error) {
	st, err := d.ident(f, "struct")
	if err != nil {
		return nil, err
	}
	member, err := d.ident(f, "member")
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindMemberAssign:
		op, err := d.op(f, "op", "=")
		if err != nil {
			return nil, err
		}
		value, err := d.optChild(f, "value")
		if err != nil {
			return nil, err
		}
		if value == nil && op.Type != token.LOGIC_NOT_EQ {
			return nil, d.errorf(n, "member assignment with %q needs a value", op.Lexeme)
		}
		return &StructReassign{Location: loc, Struct: st, Member: member, Op: op, Value: value}, nil
	case KindMemberCall:
		args, err := d.optNodes(f, "args")
		if err != nil {
			return nil, err
		}
		return &StructCall{Location: loc, Struct: st, Member: member, Args: args}, nil
	}
	return &StructAccess{Location: loc, Struct: st, Member: member}, nil
}
