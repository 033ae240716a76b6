package lr

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/rnglr/grammar"
	"github.com/parsekit/rnglr/lr/iteratable"
)

// tracer returns the syntax tracer, tagged with pkg=lr.
func tracer() tracing.Trace {
	return gtrace.SyntaxTracer.P("pkg", "lr")
}

// State is a node of the characteristic finite state machine (CFSM): a
// canonical LR(1) item set plus the transitions leaving it.
type State struct {
	ID    int
	Items *iteratable.Set // of Item
}

func (s *State) String() string {
	return fmt.Sprintf("state %d [%d items]", s.ID, s.Items.Size())
}

// CFSM is the characteristic finite state machine built by closure/GOTO
// from a grammar's canonical LR(1) items.
type CFSM struct {
	g         *grammar.Grammar
	an        *grammar.Analysis
	states    []*State
	transCols map[int]map[int]int // state ID -> symbol column -> target state ID
}

// States returns every CFSM state, indexed by ID.
func (c *CFSM) States() []*State {
	return c.states
}

// symbolColumn maps a grammar symbol onto a dense column index spanning
// both terminals and non-terminals: terminals occupy [0,T), non-terminals
// occupy [T,T+N), mirroring Grammar.EachSymbol's iteration order.
func symbolColumn(g *grammar.Grammar, sym *grammar.Symbol) int {
	if sym.IsTerminal() {
		return int(sym.Value)
	}
	return g.TerminalCount() + int(sym.Value)
}

// BuildCFSM constructs the characteristic finite state machine for g by
// breadth-first exploration of the closure/GOTO operators, starting from
// the augmented item [S' → ·S, #stop]. States are deduplicated by kernel
// core (production, dot) alone, per canonical LR(1) construction: when a
// newly computed item set shares its core with an existing state, its
// lookaheads are merged into that state in place instead of creating a
// sibling state. A state whose item set gains lookaheads after it was
// already dequeued is re-queued so its outgoing transitions get
// recomputed against the merged set.
func BuildCFSM(g *grammar.Grammar, an *grammar.Analysis) *CFSM {
	c := &CFSM{g: g, an: an}
	start := g.Rule(0)
	s0items := closure(g, an, newItemSet(Item{Prod: start, Dot: 0, Lookahead: g.Stop().Value}))
	s0 := &State{ID: 0, Items: s0items}
	c.states = append(c.states, s0)

	c.transCols = make(map[int]map[int]int)

	worklist := []*State{s0}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		g.EachSymbol(func(X *grammar.Symbol) {
			if X.Name == "S'" {
				return
			}
			J := gotoSet(g, an, s.Items, X)
			if J.Empty() {
				return
			}
			target := c.findOrAddState(J)
			if target.justCreated || target.changed {
				target.justCreated = false
				target.changed = false
				worklist = append(worklist, target.state)
			}
			c.setTrans(s.ID, symbolColumn(g, X), target.state.ID)
		})
	}
	tracer().Debugf("built CFSM with %d states", len(c.states))
	return c
}

type findResult struct {
	state       *State
	justCreated bool
	changed     bool // existing state's item set gained lookaheads from items
}

// itemCore is the (production, dot) pair that identifies a state's kernel
// independent of lookahead, per canonical LR(1) state merging.
type itemCore struct {
	prodIndex int
	dot       int
}

func coreOf(it Item) itemCore {
	return itemCore{prodIndex: it.Prod.Index, dot: it.Dot}
}

// coreSet collects the distinct (production, dot) pairs present in items.
func coreSet(items *iteratable.Set) map[itemCore]bool {
	out := make(map[itemCore]bool)
	for _, x := range items.Values() {
		out[coreOf(asItem(x))] = true
	}
	return out
}

// sameCore reports whether a and b share exactly the same kernel cores,
// ignoring lookahead.
func sameCore(a, b *iteratable.Set) bool {
	ac, bc := coreSet(a), coreSet(b)
	if len(ac) != len(bc) {
		return false
	}
	for k := range ac {
		if !bc[k] {
			return false
		}
	}
	return true
}

// findOrAddState finds the state whose kernel core matches items, merging
// items' lookaheads into it, or adds items as a new state if no existing
// state shares its core.
func (c *CFSM) findOrAddState(items *iteratable.Set) findResult {
	for _, s := range c.states {
		if !sameCore(s.Items, items) {
			continue
		}
		newLookaheads := items.Copy()
		newLookaheads.Difference(s.Items) // keep only the items s lacks
		if newLookaheads.Empty() {
			return findResult{state: s}
		}
		s.Items.Union(newLookaheads)
		return findResult{state: s, changed: true}
	}
	s := &State{ID: len(c.states), Items: items}
	c.states = append(c.states, s)
	return findResult{state: s, justCreated: true}
}

func (c *CFSM) setTrans(from, col, to int) {
	row, ok := c.transCols[from]
	if !ok {
		row = make(map[int]int)
		c.transCols[from] = row
	}
	row[col] = to
}

func (c *CFSM) trans(from, col int) (int, bool) {
	row, ok := c.transCols[from]
	if !ok {
		return 0, false
	}
	to, ok := row[col]
	return to, ok
}
