package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/vela/internal/ast"
	"github.com/funvibe/vela/internal/token"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"or":  1,
	"and": 2,
	"==":  3,
	"!=":  3,
	"<":   4,
	">":   4,
	"<=":  4,
	">=":  4,
	"|":   5,
	"&":   6,
	"<<":  7,
	">>":  7,
	"+":   8,
	"-":   8,
	"*":   9,
	"/":   9,
	"%":   9,
	"^":   10, // Power (right-assoc)
}

// Unary operators bind tighter than every binary operator.
const prefixPrecedence = 100

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 11 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"^": true,
}

type none = struct{}

// CodePrinter renders a syntax tree back to source form. It is used to show
// programs that were loaded from AST documents.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

var _ ast.Visitor[none] = (*CodePrinter)(nil)

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders node. A top-level block prints as a statement list without
// braces.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	if b, ok := node.(*ast.Block); ok {
		p.printStatements(b.Statements)
	} else {
		p.print(node)
		p.writeln()
	}
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) print(node ast.Node) {
	if node == nil {
		p.write("<???>")
		return
	}
	ast.Accept[none](node, p)
}

func (p *CodePrinter) printStatements(stmts []ast.Node) {
	for _, stmt := range stmts {
		p.writeIndent()
		p.print(stmt)
		p.writeln()
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(node ast.Node, parentPrec int, isRight bool) {
	bin, ok := node.(*ast.BinaryOp)
	if !ok {
		p.print(node)
		return
	}
	op := bin.Op.Symbol()
	prec := getPrecedence(op)
	needParens := prec < parentPrec
	// For same precedence, check associativity
	if prec == parentPrec {
		if isRight && !rightAssoc[op] {
			needParens = true
		} else if !isRight && rightAssoc[op] {
			needParens = true
		}
	}
	if needParens {
		p.write("(")
	}
	p.printExpr(bin.Left, prec, false)
	p.write(" " + op + " ")
	p.printExpr(bin.Right, prec, true)
	if needParens {
		p.write(")")
	}
}

// printBody prints a loop, branch or function body as a braced block.
func (p *CodePrinter) printBody(body ast.Node) {
	if b, ok := body.(*ast.Block); ok {
		p.VisitBlock(b)
		return
	}
	p.write("{ ")
	p.print(body)
	p.write(" }")
}

func (p *CodePrinter) printArgs(args []ast.Node) {
	p.write("(")
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(a, 0, false)
	}
	p.write(")")
}

// printAssign prints "target op value"; value is absent for "x ~=".
func (p *CodePrinter) printAssign(target string, op token.Token, value ast.Node) {
	p.write(target)
	p.write(" " + op.Symbol())
	if value != nil {
		p.write(" ")
		p.printExpr(value, 0, false)
	}
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) none {
	switch {
	case n.Token.Lexeme != "":
		p.write(n.Token.Lexeme)
	case n.IsFloat:
		s := strconv.FormatFloat(n.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		p.write(s)
	default:
		p.write(strconv.FormatInt(n.Int, 10))
	}
	return none{}
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) none {
	p.write(strconv.Quote(n.Value))
	return none{}
}

func (p *CodePrinter) VisitListLiteral(n *ast.ListLiteral) none {
	p.write("[")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(el, 0, false)
	}
	p.write("]")
	return none{}
}

func (p *CodePrinter) VisitBlock(n *ast.Block) none {
	if len(n.Statements) == 0 {
		p.write("{}")
		return none{}
	}
	p.write("{\n")
	p.indent++
	p.printStatements(n.Statements)
	p.indent--
	p.writeIndent()
	p.write("}")
	return none{}
}

func (p *CodePrinter) VisitBinaryOp(n *ast.BinaryOp) none {
	p.printExpr(n, 0, false)
	return none{}
}

func (p *CodePrinter) VisitUnaryOp(n *ast.UnaryOp) none {
	p.write(n.Op.Symbol())
	if n.Op.Type == token.KEYWORD {
		p.write(" ")
	}
	if _, ok := n.Operand.(*ast.BinaryOp); ok {
		p.write("(")
		p.printExpr(n.Operand, 0, false)
		p.write(")")
	} else {
		p.printExpr(n.Operand, prefixPrecedence, false)
	}
	return none{}
}

func (p *CodePrinter) VisitVarAccess(n *ast.VarAccess) none {
	p.write(n.Name.Lexeme)
	return none{}
}

func (p *CodePrinter) VisitVarAssign(n *ast.VarAssign) none {
	if n.Mutable {
		p.write("var ")
	} else {
		p.write("const ")
	}
	p.write(n.Name.Lexeme + " = ")
	p.printExpr(n.Value, 0, false)
	return none{}
}

func (p *CodePrinter) VisitVarReassign(n *ast.VarReassign) none {
	p.printAssign(n.Name.Lexeme, n.Op, n.Value)
	return none{}
}

func (p *CodePrinter) VisitDelete(n *ast.Delete) none {
	p.write("del " + n.Name.Lexeme)
	return none{}
}

func (p *CodePrinter) VisitIf(n *ast.If) none {
	for i, c := range n.Cases {
		if i == 0 {
			p.write("if ")
		} else {
			p.write(" elif ")
		}
		p.printExpr(c.Condition, 0, false)
		p.write(" ")
		p.printBody(c.Body)
	}
	if n.Else != nil {
		p.write(" else ")
		p.printBody(n.Else.Body)
	}
	return none{}
}

func (p *CodePrinter) VisitFor(n *ast.For) none {
	p.write("for " + n.Var.Lexeme + " = ")
	p.printExpr(n.From, 0, false)
	p.write(" to ")
	p.printExpr(n.To, 0, false)
	if n.Step != nil {
		p.write(" step ")
		p.printExpr(n.Step, 0, false)
	}
	p.write(" ")
	p.printBody(n.Body)
	return none{}
}

func (p *CodePrinter) VisitWhile(n *ast.While) none {
	p.write("while ")
	p.printExpr(n.Condition, 0, false)
	p.write(" ")
	p.printBody(n.Body)
	return none{}
}

func (p *CodePrinter) VisitDoWhile(n *ast.DoWhile) none {
	p.write("do ")
	p.printBody(n.Body)
	p.write(" while ")
	p.printExpr(n.Condition, 0, false)
	return none{}
}

func (p *CodePrinter) VisitForEach(n *ast.ForEach) none {
	p.write("foreach " + n.Element.Lexeme + " in " + n.List.Lexeme + " ")
	p.printBody(n.Body)
	return none{}
}

func (p *CodePrinter) VisitSwitch(n *ast.Switch) none {
	p.write("switch " + n.Subject.Lexeme + " {\n")
	p.indent++
	for _, c := range n.Cases {
		p.writeIndent()
		p.write("case ")
		p.printExpr(c.Value, 0, false)
		p.write(" ")
		p.printBody(c.Body)
		p.writeln()
	}
	if n.Default != nil {
		p.writeIndent()
		p.write("default ")
		p.printBody(n.Default)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
	return none{}
}

func (p *CodePrinter) VisitReturn(n *ast.Return) none {
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		p.printExpr(n.Value, 0, false)
	}
	return none{}
}

func (p *CodePrinter) VisitContinue(n *ast.Continue) none {
	p.write("continue")
	return none{}
}

func (p *CodePrinter) VisitBreak(n *ast.Break) none {
	p.write("break")
	return none{}
}

func (p *CodePrinter) VisitFuncDef(n *ast.FuncDef) none {
	p.write("fun")
	if !n.IsAnonymous() {
		p.write(" " + n.Name.Lexeme)
	}
	p.write("(")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Lexeme)
	}
	p.write(")")
	if n.AutoReturn {
		p.write(" -> ")
		p.printExpr(n.Body, 0, false)
		return none{}
	}
	p.write(" ")
	p.printBody(n.Body)
	return none{}
}

func (p *CodePrinter) VisitCall(n *ast.Call) none {
	switch n.Callee.(type) {
	case *ast.VarAccess, *ast.Call, *ast.StructAccess:
		p.print(n.Callee)
	default:
		p.write("(")
		p.print(n.Callee)
		p.write(")")
	}
	p.printArgs(n.Args)
	return none{}
}

func (p *CodePrinter) VisitStructDef(n *ast.StructDef) none {
	p.write("struct " + n.Name.Lexeme + " ")
	p.printBody(n.Body)
	return none{}
}

func (p *CodePrinter) VisitStructAccess(n *ast.StructAccess) none {
	p.write(n.Struct.Lexeme + "." + n.Member.Lexeme)
	return none{}
}

func (p *CodePrinter) VisitStructReassign(n *ast.StructReassign) none {
	p.printAssign(n.Struct.Lexeme+"."+n.Member.Lexeme, n.Op, n.Value)
	return none{}
}

func (p *CodePrinter) VisitStructCall(n *ast.StructCall) none {
	p.write(n.Struct.Lexeme + "." + n.Member.Lexeme)
	p.printArgs(n.Args)
	return none{}
}
