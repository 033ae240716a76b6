/*
Package grammar implements the grammar model for LR-family table
construction: symbols, productions, priorities and associativity, and
the nullable/empty marker described in the data model.

Grammars are built with a grammar builder. Clients add productions as
ordered sequences of symbols; a production's RHS may be empty
(ε-production). Production 0 is always the augmented start rule
S' → S.

Example:

	b := grammar.NewBuilder("Arithmetic")
	b.LHS("E").N("E").T("+", 1).N("E").End()
	b.LHS("E").T("id", 2).End()
	g, err := b.Build()

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package grammar

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer returns the syntax tracer, tagged with pkg=grammar.
func tracer() tracing.Trace {
	return gtrace.SyntaxTracer.P("pkg", "grammar")
}

// SymbolTag distinguishes terminal and non-terminal symbols.
type SymbolTag int8

const (
	// TerminalTag marks a Symbol as a terminal.
	TerminalTag SymbolTag = iota
	// NonTerminalTag marks a Symbol as a non-terminal.
	NonTerminalTag
)

// Associativity of a terminal or production, used to resolve shift/reduce
// conflicts of equal priority.
type Associativity int8

const (
	// AssocNone means no associativity has been declared.
	AssocNone Associativity = iota
	// AssocLeft favors Reduce on a tie.
	AssocLeft
	// AssocRight favors Shift on a tie.
	AssocRight
)

// StopSymbolValue is the dense index of the distinguished end-of-input
// terminal; it always occupies index 0.
const StopSymbolValue int32 = 0

// Symbol is a terminal or non-terminal of a grammar. Indices are dense
// within each kind: terminals occupy [0, T) with STOP at 0, and
// non-terminals are numbered separately in [0, N) with S' at 0, so a
// terminal and a non-terminal can share a Value. Symbol identity is by
// pointer; within one grammar, Tag and Value together identify a symbol.
type Symbol struct {
	Name  string
	Value int32 // dense index
	Tag   SymbolTag

	// Priority and Assoc apply when Symbol is a terminal used to resolve
	// shift/reduce conflicts against a competing production.
	Priority int
	Assoc    Associativity

	// Finish marks a terminal's recognizer match as maximal (the
	// grammar description's finish/nofinish attribute); true for every
	// terminal unless declared otherwise. A nofinish terminal's
	// recognizer may still be extending its match when it reports a
	// length, so a lexer is free to keep scanning past it.
	Finish bool
}

// IsTerminal reports whether sym is a terminal symbol.
func (sym *Symbol) IsTerminal() bool {
	return sym == nil || sym.Tag == TerminalTag
}

// IsEpsilon reports whether sym is the distinguished empty-string marker.
func (sym *Symbol) IsEpsilon() bool {
	return sym != nil && sym.Value == epsilonValue
}

// TokenType returns the token-type value used by lexer and table lookups.
func (sym *Symbol) TokenType() int32 {
	if sym == nil {
		return StopSymbolValue
	}
	return sym.Value
}

func (sym *Symbol) String() string {
	if sym == nil {
		return "#stop"
	}
	return sym.Name
}

// epsilonValue is a reserved, never-dense value used for the EMPTY marker
// that appears inside FIRST-sets, not as an addressable grammar symbol.
const epsilonValue int32 = -1

// Epsilon is the symbolic empty-string marker appearing in FIRST sets.
var Epsilon = &Symbol{Name: "ε", Value: epsilonValue, Tag: TerminalTag}

// Production is a grammar rule LHS → RHS. Production 0 is always the
// augmented start rule S' → S.
type Production struct {
	Index    int // global, dense index; 0 is the augmented start rule
	NTIndex  int // index of this production within LHS's alternatives
	LHS      *Symbol
	RHS      []*Symbol
	Priority int
	Assoc    Associativity
}

// IsEpsilonProduction reports whether the RHS is empty.
func (p *Production) IsEpsilonProduction() bool {
	return len(p.RHS) == 0
}

func (p *Production) String() string {
	s := fmt.Sprintf("%d: %s →", p.Index, p.LHS.Name)
	if len(p.RHS) == 0 {
		return s + " ε"
	}
	for _, sym := range p.RHS {
		s += " " + sym.Name
	}
	return s
}

// Grammar holds a dense symbol table and the productions defined over it.
// Instances are built once via Builder and are immutable thereafter.
type Grammar struct {
	Name         string
	terminals    []*Symbol
	nonterminals []*Symbol
	byName       map[string]*Symbol
	rules        []*Production // rules[0] is the augmented start production
	rulesForLHS  map[int32][]*Production
	stopSymbol   *Symbol
}

// StartSymbol returns the non-terminal augmented into S' → S.
func (g *Grammar) StartSymbol() *Symbol {
	return g.rules[0].RHS[0]
}

// Stop returns the distinguished end-of-input terminal.
func (g *Grammar) Stop() *Symbol {
	return g.stopSymbol
}

// TerminalCount returns T, the number of terminals (including STOP).
func (g *Grammar) TerminalCount() int {
	return len(g.terminals)
}

// NonTerminalCount returns N, the number of non-terminals (including S').
func (g *Grammar) NonTerminalCount() int {
	return len(g.nonterminals)
}

// SymbolCount returns T+N.
func (g *Grammar) SymbolCount() int {
	return len(g.terminals) + len(g.nonterminals)
}

// Rule returns production i (0 is the augmented start rule).
func (g *Grammar) Rule(i int) *Production {
	return g.rules[i]
}

// Rules returns all productions, in declaration order.
func (g *Grammar) Rules() []*Production {
	return g.rules
}

// RulesFor returns every production with the given LHS, in declaration
// (ntidx) order.
func (g *Grammar) RulesFor(lhs *Symbol) []*Production {
	return g.rulesForLHS[lhs.Value]
}

// Terminal returns the terminal symbol for a given dense token value, or
// the STOP symbol if tokval is 0.
func (g *Grammar) Terminal(tokval int32) *Symbol {
	if tokval < 0 || int(tokval) >= len(g.terminals) {
		return nil
	}
	return g.terminals[tokval]
}

// Symbol resolves a symbol by name.
func (g *Grammar) Symbol(name string) *Symbol {
	return g.byName[name]
}

// EachSymbol calls fn for every terminal, then every non-terminal, in
// dense-index order. Mirrors the teacher's iteration order so that table
// construction and HTML/pterm dumps agree on column order.
func (g *Grammar) EachSymbol(fn func(*Symbol)) {
	for _, t := range g.terminals {
		fn(t)
	}
	for _, nt := range g.nonterminals {
		fn(nt)
	}
}

// EachTerminal calls fn for every terminal, including STOP.
func (g *Grammar) EachTerminal(fn func(*Symbol)) {
	for _, t := range g.terminals {
		fn(t)
	}
}

// EachNonTerminal calls fn for every non-terminal, including S'.
func (g *Grammar) EachNonTerminal(fn func(*Symbol)) {
	for _, nt := range g.nonterminals {
		fn(nt)
	}
}

// Dump logs a textual representation of the grammar's productions.
func (g *Grammar) Dump() {
	for _, r := range g.rules {
		tracer().Debugf("%s", r)
	}
}
