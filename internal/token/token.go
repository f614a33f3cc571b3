// Package token defines source positions and the token vocabulary shared by
// the AST and the evaluator.
package token

import "strings"

// TokenType names a token kind produced by the (external) lexer.
type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"

	INT        TokenType = "INT"
	FLOAT      TokenType = "FLOAT"
	STRING     TokenType = "STRING"
	IDENTIFIER TokenType = "IDENTIFIER"
	KEYWORD    TokenType = "KEYWORD"

	// Arithmetic
	PLUS   TokenType = "PLUS"
	MINUS  TokenType = "MINUS"
	MUL    TokenType = "MUL"
	DIV    TokenType = "DIV"
	POW    TokenType = "POW"
	MODULO TokenType = "MODULO"

	// Comparison
	EE  TokenType = "EE"
	NE  TokenType = "NE"
	LT  TokenType = "LT"
	GT  TokenType = "GT"
	LTE TokenType = "LTE"
	GTE TokenType = "GTE"

	// Bitwise
	LOGIC_AND   TokenType = "LOGIC_AND"
	LOGIC_OR    TokenType = "LOGIC_OR"
	LOGIC_NOT   TokenType = "LOGIC_NOT"
	LEFT_SHIFT  TokenType = "LEFT_SHIFT"
	RIGHT_SHIFT TokenType = "RIGHT_SHIFT"

	// Assignment
	EQ             TokenType = "EQ"
	PLUS_EQ        TokenType = "PLUS_EQ"
	MINUS_EQ       TokenType = "MINUS_EQ"
	MUL_EQ         TokenType = "MUL_EQ"
	DIV_EQ         TokenType = "DIV_EQ"
	POW_EQ         TokenType = "POW_EQ"
	MODULO_EQ      TokenType = "MODULO_EQ"
	LOGIC_AND_EQ   TokenType = "LOGIC_AND_EQ"
	LOGIC_OR_EQ    TokenType = "LOGIC_OR_EQ"
	LOGIC_NOT_EQ   TokenType = "LOGIC_NOT_EQ"
	LEFT_SHIFT_EQ  TokenType = "LEFT_SHIFT_EQ"
	RIGHT_SHIFT_EQ TokenType = "RIGHT_SHIFT_EQ"
)

// Keywords used as operators.
const (
	KeywordAnd = "and"
	KeywordOr  = "or"
	KeywordNot = "not"
)

// CompoundSuffix marks a compound assignment token type (PLUS_EQ, ...).
const CompoundSuffix = "_EQ"

// Token is a single lexeme with its span.
type Token struct {
	Type   TokenType
	Lexeme string
	Start  Position
	End    Position
}

// Is reports whether t is the keyword kw.
func (t Token) Is(kw string) bool {
	return t.Type == KEYWORD && t.Lexeme == kw
}

// IsCompound reports whether t is a compound assignment operator.
func (t Token) IsCompound() bool {
	return t.Type != EQ && strings.HasSuffix(string(t.Type), CompoundSuffix)
}

// Base strips the compound suffix: PLUS_EQ -> PLUS.
func (t TokenType) Base() TokenType {
	return TokenType(strings.TrimSuffix(string(t), CompoundSuffix))
}

var operators = map[string]TokenType{
	"+":   PLUS,
	"-":   MINUS,
	"*":   MUL,
	"/":   DIV,
	"^":   POW,
	"%":   MODULO,
	"==":  EE,
	"!=":  NE,
	"<":   LT,
	">":   GT,
	"<=":  LTE,
	">=":  GTE,
	"&":   LOGIC_AND,
	"|":   LOGIC_OR,
	"~":   LOGIC_NOT,
	"<<":  LEFT_SHIFT,
	">>":  RIGHT_SHIFT,
	"=":   EQ,
	"+=":  PLUS_EQ,
	"-=":  MINUS_EQ,
	"*=":  MUL_EQ,
	"/=":  DIV_EQ,
	"^=":  POW_EQ,
	"%=":  MODULO_EQ,
	"&=":  LOGIC_AND_EQ,
	"|=":  LOGIC_OR_EQ,
	"~=":  LOGIC_NOT_EQ,
	"<<=": LEFT_SHIFT_EQ,
	">>=": RIGHT_SHIFT_EQ,
}

// LookupOperator maps an operator lexeme ("+", "+=", "and", "&&", ...) to its
// token. Word operators and their symbolic aliases become KEYWORD tokens with
// the word as lexeme.
func LookupOperator(lexeme string) (Token, bool) {
	switch lexeme {
	case KeywordAnd, "&&":
		return Token{Type: KEYWORD, Lexeme: KeywordAnd}, true
	case KeywordOr, "||":
		return Token{Type: KEYWORD, Lexeme: KeywordOr}, true
	case KeywordNot, "!":
		return Token{Type: KEYWORD, Lexeme: KeywordNot}, true
	}
	tt, ok := operators[lexeme]
	if !ok {
		return Token{Type: ILLEGAL, Lexeme: lexeme}, false
	}
	return Token{Type: tt, Lexeme: lexeme}, true
}

// Symbol returns the source spelling of an operator token.
func (t Token) Symbol() string {
	if t.Type == KEYWORD {
		return t.Lexeme
	}
	for lex, tt := range operators {
		if tt == t.Type {
			return lex
		}
	}
	return t.Lexeme
}
