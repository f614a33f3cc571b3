package token

import "fmt"

// Position is a location in a source document.
type Position struct {
	// File is the document the position belongs to (optional).
	File string
	// Line number (1-indexed).
	Line int
	// Column number (1-indexed).
	Column int
	// Offset is the byte offset from the start of the document (0-indexed).
	Offset int
}

// String returns "file:line:column", or "line:column" when File is empty.
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points into a document (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Span is a range in a source document from Start to End.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line && s.Start.File == s.End.File {
		return fmt.Sprintf("%s-%d", s.Start.String(), s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start.String(), s.End.String())
}

// NoPos is used when a position is unknown.
var NoPos = Position{}
