package lr

import (
	"fmt"

	"github.com/parsekit/rnglr/errors"
	"github.com/parsekit/rnglr/grammar"
	"github.com/parsekit/rnglr/lr/sparse"
)

// Action codes stored in the ACTION table. Non-negative values are
// reduce-by-production indices (including virtual right-nulled
// productions, whose index is >= len(Grammar().Rules())). The two negative
// sentinels below are reserved.
const (
	ShiftAction  int32 = -1
	AcceptAction int32 = -2
)

// Mode selects how conflicting actions are handled during table
// construction.
type Mode int8

const (
	// LRMode resolves every shift/reduce and reduce/reduce conflict via
	// priority and associativity; an unresolved conflict fails table
	// construction (Build returns an error).
	LRMode Mode = iota
	// GLRMode keeps every action that survives the right-nulled
	// transform, including unresolved conflicts, for the GSS-based
	// runtime to explore in parallel.
	GLRMode
)

// TableOptions configures table construction beyond the basic mode
// switch. GLRMode mirrors the Mode a table was built in and is always
// overwritten by Build; the other three correspond directly to the
// parser-definition-artifact option flags of §6: LongestMatch and
// GrammarOrder govern lexical disambiguation precedence (the lexer
// contract already applies longest-match-then-declaration-order; these
// flags are carried on the artifact so a host can inspect or override
// that policy), and PartialParse lets a runtime accept as soon as STOP
// becomes an expected token, instead of requiring the real input to be
// exhausted.
type TableOptions struct {
	GLRMode      bool
	LongestMatch bool
	GrammarOrder bool
	PartialParse bool
}

// DefaultTableOptions returns the conventional defaults: longest match
// wins lexical ties, grammar declaration order breaks the remaining
// ties, and a parse must consume all of its input to accept.
func DefaultTableOptions() TableOptions {
	return TableOptions{LongestMatch: true, GrammarOrder: true}
}

// RNProduction is a "right-nulled" production variant: a reduction of
// only the first Length symbols of Prod's RHS, valid because the
// remaining suffix Prod.RHS[Length:] is non-empty and fully nullable.
// The right-nulled transform folds these into the GLR action table so
// that a reduce can fire as soon as the non-nullable prefix is matched,
// without first forcing the parser through a chain of epsilon
// reductions over the trailing nullable symbols.
type RNProduction struct {
	Prod   *grammar.Production
	Length int
}

func (rn RNProduction) String() string {
	return fmt.Sprintf("%s (right-nulled at %d)", rn.Prod, rn.Length)
}

// rightNulledProductions computes every RNProduction of g: for each
// production and each dot position 1..len(RHS)-1 whose remaining suffix
// is fully nullable.
func rightNulledProductions(g *grammar.Grammar, an *grammar.Analysis) []RNProduction {
	var out []RNProduction
	for _, p := range g.Rules() {
		for k := 1; k < len(p.RHS); k++ {
			if an.SequenceIsNullable(p.RHS[k:]) {
				out = append(out, RNProduction{Prod: p, Length: k})
			}
		}
	}
	return out
}

// Table holds the ACTION and GOTO tables produced by table construction,
// plus enough grammar metadata for a runtime to interpret them.
type Table struct {
	g        *grammar.Grammar
	an       *grammar.Analysis
	cfsm     *CFSM
	mode     Mode
	opts     TableOptions
	action   *sparse.ActionMatrix // rows: state, cols: terminal value
	trans    *sparse.IntMatrix    // rows: state, cols: symbolColumn(sym)
	rnProds  []RNProduction       // virtual productions, indexed starting at g.Rules() length
	conflict []Conflict
}

// Conflict records a table cell that held more than one action: in
// LRMode one resolved by priority/associativity (an unresolvable one
// makes Build fail instead), in GLRMode every such cell, left unresolved.
type Conflict struct {
	State    int
	Terminal *grammar.Symbol
	Actions  []int32
	Resolved bool
	Winner   int32
}

// Grammar returns the grammar this table was built for.
func (t *Table) Grammar() *grammar.Grammar { return t.g }

// Analysis returns the FIRST/FOLLOW analysis this table was built from.
func (t *Table) Analysis() *grammar.Analysis { return t.an }

// CFSM returns the underlying characteristic finite state machine.
func (t *Table) CFSM() *CFSM { return t.cfsm }

// Mode reports whether this table was built for deterministic (LRMode)
// or ambiguity-tolerant (GLRMode) parsing.
func (t *Table) Mode() Mode { return t.mode }

// Options returns the TableOptions this table was built with.
func (t *Table) Options() TableOptions { return t.opts }

// StateCount returns the number of CFSM states.
func (t *Table) StateCount() int { return len(t.cfsm.states) }

// Conflicts returns every conflict encountered during construction, in
// state-then-terminal order.
func (t *Table) Conflicts() []Conflict { return t.conflict }

// Actions returns the list of actions for (state, terminal): shift
// (ShiftAction, then consult Goto for the target state), accept
// (AcceptAction), or reduce-by-production (the production's index, real
// or right-nulled).
func (t *Table) Actions(state int, terminal *grammar.Symbol) []int32 {
	return t.action.Values(state, int(terminal.Value))
}

// Goto returns the CFSM transition target for (state, symbol), used both
// for shifting a terminal and for the post-reduce GOTO on a non-terminal.
func (t *Table) Goto(state int, sym *grammar.Symbol) (int, bool) {
	v := t.trans.Value(state, symbolColumn(t.g, sym))
	if v == t.trans.NullValue() {
		return 0, false
	}
	return int(v), true
}

// ExpectedTokenKind pairs a terminal valid in some state with whether its
// recognizer reports a maximal match, mirroring lr/lexer.Match.Finished.
type ExpectedTokenKind struct {
	Terminal *grammar.Symbol
	Finish   bool
}

// ExpectedTokenKinds returns, in grammar declaration order, every
// terminal with at least one action in state — the expected_token_kinds
// artifact field of §6. It is derived from the ACTION table and the
// grammar's own per-terminal Finish attribute rather than stored
// separately, so it survives a MarshalBinary/UnmarshalBinary round trip
// for free.
func (t *Table) ExpectedTokenKinds(state int) []ExpectedTokenKind {
	var out []ExpectedTokenKind
	t.g.EachTerminal(func(term *grammar.Symbol) {
		if len(t.Actions(state, term)) > 0 {
			out = append(out, ExpectedTokenKind{Terminal: term, Finish: term.Finish})
		}
	})
	return out
}

// ProductionAt resolves a (possibly virtual, right-nulled) reduce action
// code to the production to reduce by and the number of RHS symbols to
// pop from the stack (which is less than len(RHS) for a right-nulled
// reduction).
func (t *Table) ProductionAt(code int32) (prod *grammar.Production, popCount int) {
	real := len(t.g.Rules())
	if int(code) < real {
		p := t.g.Rule(int(code))
		return p, len(p.RHS)
	}
	rn := t.rnProds[int(code)-real]
	return rn.Prod, rn.Length
}

// IsRightNulled reports whether a reduce action code refers to a virtual
// right-nulled production rather than a real one.
func (t *Table) IsRightNulled(code int32) bool {
	return int(code) >= len(t.g.Rules())
}

// Build constructs ACTION and GOTO tables for g in the given mode. In
// LRMode, an unresolved shift/reduce or reduce/reduce conflict is
// reported as an error rather than silently picking one action. opts is
// optional; a caller that omits it gets DefaultTableOptions with
// GLRMode set to match mode.
func Build(g *grammar.Grammar, an *grammar.Analysis, mode Mode, opts ...TableOptions) (*Table, error) {
	o := DefaultTableOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	o.GLRMode = mode == GLRMode

	cfsm := BuildCFSM(g, an)
	t := &Table{
		g:      g,
		an:     an,
		cfsm:   cfsm,
		mode:   mode,
		opts:   o,
		action: sparse.NewActionMatrix(len(cfsm.states), g.TerminalCount(), sparse.DefaultNullValue),
		trans:  sparse.NewIntMatrix(len(cfsm.states), g.SymbolCount(), sparse.DefaultNullValue),
	}
	if mode == GLRMode {
		t.rnProds = rightNulledProductions(g, an)
	}

	for _, s := range cfsm.states {
		row := cfsm.transCols[s.ID]
		for col, target := range row {
			t.trans.Set(s.ID, col, int32(target))
			if col < g.TerminalCount() {
				t.action.Add(s.ID, col, ShiftAction)
			}
		}
		for _, x := range s.Items.Values() {
			item := asItem(x)
			if item.AtEnd() {
				if item.Prod.Index == 0 && item.Lookahead == g.Stop().Value {
					t.action.Add(s.ID, int(item.Lookahead), AcceptAction)
				} else {
					t.action.Add(s.ID, int(item.Lookahead), int32(item.Prod.Index))
				}
				continue
			}
			if mode == GLRMode && item.Dot > 0 {
				for _, rn := range t.rnProds {
					if rn.Prod.Index == item.Prod.Index && rn.Length == item.Dot {
						rnIndex := int32(len(g.Rules()) + indexOfRN(t.rnProds, rn))
						lookaheads := an.FirstOfSequence(item.Rest(), []int32{item.Lookahead})
						for _, la := range lookaheads {
							t.action.Add(s.ID, int(la), rnIndex)
						}
					}
				}
			}
		}
	}

	if mode == LRMode {
		if err := resolveConflicts(t); err != nil {
			return nil, err
		}
	} else {
		recordConflicts(t)
	}
	return t, nil
}

func indexOfRN(rns []RNProduction, target RNProduction) int {
	for i, rn := range rns {
		if rn.Prod.Index == target.Prod.Index && rn.Length == target.Length {
			return i
		}
	}
	return -1
}

// resolveConflicts picks a single winning action per cell using
// production/terminal priority and associativity, matching the
// classic yacc-style disambiguation rule: higher priority wins; on a
// tie, left-associative favors reduce and right-associative favors
// shift. A cell that cannot be resolved this way fails table
// construction.
func resolveConflicts(t *Table) error {
	g := t.g
	for s := 0; s < len(t.cfsm.states); s++ {
		for tv := 0; tv < g.TerminalCount(); tv++ {
			actions := t.action.Values(s, tv)
			if len(actions) <= 1 {
				continue
			}
			term := g.Terminal(int32(tv))
			winner, ok := resolve(g, term, actions)
			if !ok {
				return errors.NewGrammarError(g.Name,
					fmt.Sprintf("unresolved shift/reduce or reduce/reduce conflict on %q: actions %v", term.Name, actions)).
					WithSymbol(term.Name).WithState(s)
			}
			t.action.Set(s, tv, winner)
			t.conflict = append(t.conflict, Conflict{State: s, Terminal: term, Actions: actions, Resolved: true, Winner: winner})
		}
	}
	return nil
}

func recordConflicts(t *Table) {
	g := t.g
	for s := 0; s < len(t.cfsm.states); s++ {
		for tv := 0; tv < g.TerminalCount(); tv++ {
			actions := t.action.Values(s, tv)
			if len(actions) > 1 {
				t.conflict = append(t.conflict, Conflict{State: s, Terminal: g.Terminal(int32(tv)), Actions: actions})
			}
		}
	}
}

// resolve picks a single action among competing ones for lookahead term,
// or reports failure when priorities are equal and associativity gives
// no guidance (classic shift/shift is never resolvable this way).
func resolve(g *grammar.Grammar, term *grammar.Symbol, actions []int32) (int32, bool) {
	best := actions[0]
	bestPrio, bestAssoc, bestOk := actionPriority(g, term, best)
	tie := false
	for _, a := range actions[1:] {
		prio, assoc, ok := actionPriority(g, term, a)
		if !bestOk || !ok {
			return 0, false
		}
		switch {
		case prio > bestPrio:
			best, bestPrio, bestAssoc = a, prio, assoc
			tie = false
		case prio < bestPrio:
			// current best stands
		default:
			tie = true
			if assoc == grammar.AssocRight && isShift(a) {
				best, bestAssoc = a, assoc
			} else if assoc == grammar.AssocLeft && !isShift(a) {
				best, bestAssoc = a, assoc
			}
		}
	}
	if tie && bestAssoc == grammar.AssocNone {
		return 0, false
	}
	return best, true
}

func isShift(a int32) bool { return a == ShiftAction }

// actionPriority returns the priority and associativity that govern an
// action: the terminal's for a shift, the production's for a reduce.
func actionPriority(g *grammar.Grammar, term *grammar.Symbol, action int32) (int, grammar.Associativity, bool) {
	if action == AcceptAction {
		return 0, grammar.AssocNone, false
	}
	if isShift(action) {
		return term.Priority, term.Assoc, true
	}
	if int(action) >= len(g.Rules()) {
		return 0, grammar.AssocNone, false // right-nulled reduces never participate in LR-mode resolution
	}
	p := g.Rule(int(action))
	return p.Priority, p.Assoc, true
}
