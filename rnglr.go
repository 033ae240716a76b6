package rnglr

import "fmt"

// TokType is a category type for a Token. Terminal symbol values double as
// TokType values: index 0 is always the STOP (end of input) terminal.
type TokType int32

// StopTokType is the token type of the distinguished end-of-input terminal.
const StopTokType TokType = 0

// TokTypeStringer renders a TokType as a human-readable name; supplied by a
// grammar/lexer pairing so that error messages can name terminals.
type TokTypeStringer func(TokType) string

// Token is produced by a Lexer and consumed by a Runtime. It reflects a
// terminal recognized in the input.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// Span captures a half-open range [From, To) of input positions covered by
// a terminal or non-terminal during a parse.
type Span [2]uint64

// From returns the start position of a span.
func (s Span) From() uint64 { return s[0] }

// To returns the position just behind the end of a span.
func (s Span) To() uint64 { return s[1] }

// Len returns the length covered by the span.
func (s Span) Len() uint64 { return s[1] - s[0] }

// IsNull reports whether the span is the zero span.
func (s Span) IsNull() bool { return s == Span{} }

// Extend grows s so that it also covers other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
