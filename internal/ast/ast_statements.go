package ast

import "github.com/funvibe/vela/internal/token"

// IfCase is one if/elif branch. NullResult makes the branch evaluate to Null
// (statement-block bodies).
type IfCase struct {
	Condition  Node
	Body       Node
	NullResult bool
}

// ElseCase is the else branch of an If.
type ElseCase struct {
	Body       Node
	NullResult bool
}

// If is an if/elif/else chain.
type If struct {
	Location
	Cases []IfCase
	Else  *ElseCase
}

func (i *If) node() {}

// For is a counting loop: for i = from to to [step step] { body }
type For struct {
	Location
	Var        token.Token
	From       Node
	To         Node
	Step       Node // optional, defaults to 1
	Body       Node
	NullResult bool
}

func (f *For) node() {}

// While runs Body while Condition holds.
type While struct {
	Location
	Condition  Node
	Body       Node
	NullResult bool
}

func (w *While) node() {}

// DoWhile runs Body once, then while Condition holds.
type DoWhile struct {
	Location
	Body       Node
	Condition  Node
	NullResult bool
}

func (dw *DoWhile) node() {}

// ForEach iterates the list bound to List: foreach e in xs { body }
type ForEach struct {
	Location
	Element    token.Token
	List       token.Token
	Body       Node
	NullResult bool
}

func (fe *ForEach) node() {}

// SwitchCase is one case of a Switch.
type SwitchCase struct {
	Value Node
	Body  Node
}

// Switch matches the value of Subject against its cases.
type Switch struct {
	Location
	Subject token.Token
	Cases   []SwitchCase
	Default Node // optional
}

func (s *Switch) node() {}

// Return leaves the enclosing function. Value may be nil.
type Return struct {
	Location
	Value Node
}

func (r *Return) node() {}

// Continue skips to the next loop iteration.
type Continue struct {
	Location
}

func (c *Continue) node() {}

// Break leaves the enclosing loop or switch.
type Break struct {
	Location
}

func (b *Break) node() {}
