/*
Package errors collects the error taxonomy shared across the grammar
model, table construction and both runtimes: fatal GrammarError for offline
table-construction defects, ParseError for a parse whose frontier dies
before STOP, and Invariant for conditions that indicate a corrupted
table or a programming defect rather than bad input.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package errors

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// expectedWrapWidth is the column at which a long expected-terminal
// list in a ParseError gets wrapped.
const expectedWrapWidth = 72

// GrammarError reports a defect found during offline table
// construction: an empty FIRST set, an unresolved shift/reduce or
// reduce/reduce conflict, or a reference to an undefined symbol. A
// GrammarError is fatal; it prevents table emission.
type GrammarError struct {
	Grammar  string
	Symbol   string
	State    int
	HasState bool
	Msg      string
}

// NewGrammarError creates a GrammarError naming the grammar and the
// problem found in it.
func NewGrammarError(grammarName, msg string) *GrammarError {
	return &GrammarError{Grammar: grammarName, Msg: msg}
}

// WithSymbol attaches the offending symbol's name and returns e for
// chaining.
func (e *GrammarError) WithSymbol(sym string) *GrammarError {
	e.Symbol = sym
	return e
}

// WithState attaches the offending CFSM state and returns e for
// chaining.
func (e *GrammarError) WithState(state int) *GrammarError {
	e.State = state
	e.HasState = true
	return e
}

func (e *GrammarError) Error() string {
	var b strings.Builder
	b.WriteString("grammar")
	if e.Grammar != "" {
		fmt.Fprintf(&b, " %q", e.Grammar)
	}
	if e.Symbol != "" {
		fmt.Fprintf(&b, " (symbol %s)", e.Symbol)
	}
	if e.HasState {
		fmt.Fprintf(&b, " (state %d)", e.State)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// ParseError reports that a parse's frontier became empty before STOP
// was reached: the runtime counterpart of a GrammarError. It carries
// the furthest position reached, the input's file name (empty for
// in-memory input), what was actually found there, and the union of
// terminals the last live frontier would have accepted.
type ParseError struct {
	Pos      uint64
	FileName string
	Got      string
	Expected []string
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("position %d", e.Pos)
	if e.FileName != "" {
		loc = fmt.Sprintf("%s:%d", e.FileName, e.Pos)
	}
	got := e.Got
	if got == "" {
		got = "end of input"
	}
	expected := strings.Join(e.Expected, ", ")
	if len(expected) > expectedWrapWidth {
		expected = rosed.Edit(expected).Wrap(expectedWrapWidth).String()
	}
	return fmt.Sprintf("parse error at %s: unexpected %s, expected one of: %s", loc, got, expected)
}

// Invariant panics with a message identifying a corrupted-table or
// programming-defect condition: a pop of an empty stack, a
// type-mismatched semantic value, a GOTO to a missing entry. These
// never surface as a returned error, per the error taxonomy's
// separation between reportable failures and internal invariants.
func Invariant(format string, args ...interface{}) {
	panic("rnglr: internal invariant violated: " + fmt.Sprintf(format, args...))
}
