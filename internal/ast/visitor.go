package ast

import "fmt"

// Visitor has one method per node kind. Implementations are checked for
// completeness by the compiler; Accept routes a node to its method.
type Visitor[T any] interface {
	// Literals
	VisitNumberLiteral(*NumberLiteral) T
	VisitStringLiteral(*StringLiteral) T
	VisitListLiteral(*ListLiteral) T
	VisitBlock(*Block) T

	// Operations
	VisitBinaryOp(*BinaryOp) T
	VisitUnaryOp(*UnaryOp) T

	// Variables
	VisitVarAccess(*VarAccess) T
	VisitVarAssign(*VarAssign) T
	VisitVarReassign(*VarReassign) T
	VisitDelete(*Delete) T

	// Control flow
	VisitIf(*If) T
	VisitFor(*For) T
	VisitWhile(*While) T
	VisitDoWhile(*DoWhile) T
	VisitForEach(*ForEach) T
	VisitSwitch(*Switch) T
	VisitReturn(*Return) T
	VisitContinue(*Continue) T
	VisitBreak(*Break) T

	// Functions
	VisitFuncDef(*FuncDef) T
	VisitCall(*Call) T

	// Structs
	VisitStructDef(*StructDef) T
	VisitStructAccess(*StructAccess) T
	VisitStructReassign(*StructReassign) T
	VisitStructCall(*StructCall) T
}

// Accept dispatches node to the matching visitor method.
// An unknown node kind is a programming error and panics.
//
//	v := ast.Accept[Result](node, myVisitor)
func Accept[T any](node Node, v Visitor[T]) T {
	switch n := node.(type) {
	case *NumberLiteral:
		return v.VisitNumberLiteral(n)
	case *StringLiteral:
		return v.VisitStringLiteral(n)
	case *ListLiteral:
		return v.VisitListLiteral(n)
	case *Block:
		return v.VisitBlock(n)

	case *BinaryOp:
		return v.VisitBinaryOp(n)
	case *UnaryOp:
		return v.VisitUnaryOp(n)

	case *VarAccess:
		return v.VisitVarAccess(n)
	case *VarAssign:
		return v.VisitVarAssign(n)
	case *VarReassign:
		return v.VisitVarReassign(n)
	case *Delete:
		return v.VisitDelete(n)

	case *If:
		return v.VisitIf(n)
	case *For:
		return v.VisitFor(n)
	case *While:
		return v.VisitWhile(n)
	case *DoWhile:
		return v.VisitDoWhile(n)
	case *ForEach:
		return v.VisitForEach(n)
	case *Switch:
		return v.VisitSwitch(n)
	case *Return:
		return v.VisitReturn(n)
	case *Continue:
		return v.VisitContinue(n)
	case *Break:
		return v.VisitBreak(n)

	case *FuncDef:
		return v.VisitFuncDef(n)
	case *Call:
		return v.VisitCall(n)

	case *StructDef:
		return v.VisitStructDef(n)
	case *StructAccess:
		return v.VisitStructAccess(n)
	case *StructReassign:
		return v.VisitStructReassign(n)
	case *StructCall:
		return v.VisitStructCall(n)
	}
	panic(fmt.Sprintf("ast: no visitor method for node %T", node))
}

// Walk traverses an AST depth-first, calling fn for each node. If fn returns
// false the children of that node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *ListLiteral:
		walkAll(n.Elements, fn)
	case *Block:
		walkAll(n.Statements, fn)
	case *BinaryOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryOp:
		Walk(n.Operand, fn)
	case *VarAssign:
		Walk(n.Value, fn)
	case *VarReassign:
		Walk(n.Value, fn)
	case *If:
		for _, c := range n.Cases {
			Walk(c.Condition, fn)
			Walk(c.Body, fn)
		}
		if n.Else != nil {
			Walk(n.Else.Body, fn)
		}
	case *For:
		Walk(n.From, fn)
		Walk(n.To, fn)
		Walk(n.Step, fn)
		Walk(n.Body, fn)
	case *While:
		Walk(n.Condition, fn)
		Walk(n.Body, fn)
	case *DoWhile:
		Walk(n.Body, fn)
		Walk(n.Condition, fn)
	case *ForEach:
		Walk(n.Body, fn)
	case *Switch:
		for _, c := range n.Cases {
			Walk(c.Value, fn)
			Walk(c.Body, fn)
		}
		Walk(n.Default, fn)
	case *Return:
		Walk(n.Value, fn)
	case *FuncDef:
		Walk(n.Body, fn)
	case *Call:
		Walk(n.Callee, fn)
		walkAll(n.Args, fn)
	case *StructDef:
		Walk(n.Body, fn)
	case *StructReassign:
		Walk(n.Value, fn)
	case *StructCall:
		walkAll(n.Args, fn)
	}
}

func walkAll(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		Walk(n, fn)
	}
}
