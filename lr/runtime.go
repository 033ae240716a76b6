package lr

import (
	"golang.org/x/exp/slices"

	"github.com/parsekit/rnglr"
	"github.com/parsekit/rnglr/errors"
	"github.com/parsekit/rnglr/grammar"
)

// Scanner is the minimal token source a deterministic Runtime pulls
// from. Implementations decide how look-ahead, whitespace and comments
// are handled; the runtime only ever asks for "the next token".
type Scanner interface {
	NextToken() (rnglr.Token, error)
}

// Builder receives shift/reduce events as the deterministic runtime
// drives a parse, per the Builder Contract.
type Builder interface {
	Shift(tok rnglr.Token)
	Reduce(prod *grammar.Production, popCount int)
	Accept()
}

// Runtime is a deterministic LR parser driven by a pre-built Table, used
// for the main grammar when the grammar happens to be LR(1). No Layout
// sub-grammar for whitespace is run through it or anywhere else.
type Runtime struct {
	t *Table
}

// NewRuntime creates a deterministic runtime for table t. Build t with
// LRMode; a GLRMode table may carry unresolved conflicts a deterministic
// runtime cannot interpret.
func NewRuntime(t *Table) *Runtime {
	return &Runtime{t: t}
}

// ParseFrom behaves like Parse but seeds the stack with a single entry
// in initialState instead of state 0, letting a caller resume a parse
// a host already advanced partway. Only the stack is seeded; no Layout
// sub-parse is involved.
func (r *Runtime) ParseFrom(initialState int, scan Scanner, b Builder) error {
	return r.parse(initialState, scan, b)
}

// Parse drives scan to completion against the table starting at state
// 0, invoking b's Shift/Reduce/Accept callbacks. It returns an error at
// the first token with no valid action (a *errors.ParseError) or if
// scan itself fails.
func (r *Runtime) Parse(scan Scanner, b Builder) error {
	return r.parse(0, scan, b)
}

type stackEntry struct {
	state int
	sym   *grammar.Symbol
	span  rnglr.Span
}

// newParseError builds a *errors.ParseError describing the symbol got
// (nil for end of input) and the terminals expected in state s.
func newParseError(pos rnglr.Span, got *grammar.Symbol, expected []*grammar.Symbol) *errors.ParseError {
	names := make([]string, len(expected))
	for i, s := range expected {
		names[i] = s.Name
	}
	gotName := ""
	if got != nil {
		gotName = got.Name
	}
	return &errors.ParseError{Pos: pos.From(), Got: gotName, Expected: names}
}

func (r *Runtime) parse(initialState int, scan Scanner, b Builder) error {
	g := r.t.g
	stack := []stackEntry{{state: initialState}}

	tok, err := scan.NextToken()
	if err != nil {
		return err
	}

	for {
		top := stack[len(stack)-1]
		term := g.Terminal(int32(tok.TokType()))
		if term == nil {
			term = g.Stop()
		}
		// Partial-parse mode: whenever STOP is itself a valid lookahead
		// in the current state, a reduce or accept on it is safe to
		// fire in place of whatever real token follows — STOP never
		// shifts, so the only actions a state ever carries for it are
		// reduces leading towards Accept.
		if r.t.opts.PartialParse && term != g.Stop() && len(r.t.Actions(top.state, g.Stop())) > 0 {
			term = g.Stop()
		}
		actions := r.t.Actions(top.state, term)
		if len(actions) == 0 {
			return newParseError(tok.Span(), term, r.expected(top.state))
		}
		action := actions[0]

		switch {
		case action == AcceptAction:
			b.Accept()
			return nil
		case action == ShiftAction:
			target, ok := r.t.Goto(top.state, term)
			if !ok {
				return newParseError(tok.Span(), term, r.expected(top.state))
			}
			stack = append(stack, stackEntry{state: target, sym: term, span: tok.Span()})
			b.Shift(tok)
			tok, err = scan.NextToken()
			if err != nil {
				return err
			}
		default:
			prod, popCount := r.t.ProductionAt(action)
			var span rnglr.Span
			if popCount > 0 {
				span = stack[len(stack)-popCount].span.Extend(stack[len(stack)-1].span)
				stack = stack[:len(stack)-popCount]
			} else {
				span = rnglr.Span{tok.Span().From(), tok.Span().From()}
			}
			base := stack[len(stack)-1]
			target, ok := r.t.Goto(base.state, prod.LHS)
			if !ok {
				errors.Invariant("no GOTO from state %d on %s (corrupt table)", base.state, prod.LHS.Name)
			}
			stack = append(stack, stackEntry{state: target, sym: prod.LHS, span: span})
			b.Reduce(prod, popCount)
		}
	}
}

// expected lists the terminals with at least one action in state s, for
// diagnostic messages.
func (r *Runtime) expected(s int) []*grammar.Symbol {
	var out []*grammar.Symbol
	r.t.g.EachTerminal(func(term *grammar.Symbol) {
		if len(r.t.Actions(s, term)) > 0 {
			out = append(out, term)
		}
	})
	slices.SortFunc(out, func(a, b *grammar.Symbol) bool { return a.Name < b.Name })
	return out
}
