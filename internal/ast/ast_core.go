// Package ast defines the closed set of syntax tree nodes the evaluator
// consumes. Nodes are produced by an external parser (or decoded from an AST
// document, see Decode) and are never mutated during evaluation.
package ast

import "github.com/funvibe/vela/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position
	// End returns the position just past the node.
	End() token.Position
	node()
}

// Location is embedded by every node and records its source span.
type Location struct {
	StartPos token.Position
	EndPos   token.Position
}

func (l Location) Pos() token.Position { return l.StartPos }
func (l Location) End() token.Position { return l.EndPos }

// At builds a Location from a start and end position.
func At(start, end token.Position) Location {
	return Location{StartPos: start, EndPos: end}
}

// NumberLiteral is an integer or floating point literal.
type NumberLiteral struct {
	Location
	Token   token.Token
	Int     int64
	Float   float64
	IsFloat bool
}

func (nl *NumberLiteral) node() {}

// StringLiteral is a string literal.
type StringLiteral struct {
	Location
	Token token.Token
	Value string
}

func (sl *StringLiteral) node() {}

// ListLiteral is a bracketed list of element expressions.
type ListLiteral struct {
	Location
	Elements []Node
}

func (ll *ListLiteral) node() {}

// Block is a sequence of statements. It evaluates to the list of the
// statement values.
type Block struct {
	Location
	Statements []Node
}

func (b *Block) node() {}
