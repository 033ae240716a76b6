/*
Package glr implements the RNGLR (right-nulled generalized LR) runtime:
a GSS-driven parser that explores every shift and every reduce a GLR
action table offers at once, merging alternatives that reach the same
parser state at the same input position and producing a Shared Packed
Parse Forest of every successful derivation.

The algorithm processes input one frontier (input position) at a time:
first the lexer is asked for the token(s) at the current position; then
every reduction those tokens (or STOP, at end of input) permit is
applied, discovering new heads and SPPF nodes, to a fixed point; only
then are the tokens shifted, creating the next frontier. A lexical ambiguity
(more than one token matching a position) simply fans a frontier out
into parallel shifts, each producing its own successor head; GSS stack
compaction merges them back together the moment two alternatives reach
the same state.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package glr

import (
	"golang.org/x/exp/slices"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/rnglr"
	"github.com/parsekit/rnglr/errors"
	"github.com/parsekit/rnglr/grammar"
	"github.com/parsekit/rnglr/lr"
	"github.com/parsekit/rnglr/lr/gss"
	"github.com/parsekit/rnglr/lr/sppf"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer.P("pkg", "glr")
}

// Scanner supplies every token that matches at a given input position
// among the expected terminals, supporting lexical-ambiguity fan-out
// (more than one terminal matching the same prefix).
type Scanner interface {
	Lex(pos uint64, expected []*grammar.Symbol) ([]rnglr.Token, error)
}

// Session identifies one run of the GLR runtime, for correlating log
// output and diagnostics across a parse that may fan out into many
// concurrent GSS heads.
type Session struct {
	ID uuid.UUID
}

// NewSession creates a fresh session identifier.
func NewSession() Session {
	return Session{ID: uuid.New()}
}

// Result is the outcome of a successful parse: the forest and the
// start-symbol SymbolNode of every final head that accepts on STOP
// (normally exactly one, unless the grammar is so pathological that more
// than one start state survives to full acceptance). In PartialParse mode
// a root covers only the input consumed before acceptance.
type Result struct {
	Forest *sppf.Forest
	Roots  []*sppf.SymbolNode
}

// Parser drives a GLR-mode table against a Scanner.
type Parser struct {
	t *lr.Table
}

// NewParser creates a GLR parser for t. t must have been built with
// lr.GLRMode; an lr.LRMode table never retains more than one action per
// cell, so there would never be anything to fan out.
func NewParser(t *lr.Table) *Parser {
	return &Parser{t: t}
}

// Parse runs scan to completion, returning every successful derivation
// packed into a shared forest.
func (p *Parser) Parse(scan Scanner) (*Result, error) {
	sess := NewSession()
	tracer().Debugf("glr session %s starting", sess.ID)

	g := p.t.Grammar()
	forest := sppf.NewForest()
	g2 := gss.New()
	root := g2.NewHead(0, 0)

	// nodeFor maps a head to the SymbolNode most recently pushed onto
	// it (the symbol labeling the edge leading into it), used to
	// recover SPPF children when a handle is popped off the GSS.
	nodeFor := make(map[*gss.Head]*sppf.SymbolNode)

	pos := uint64(0)
	frontier := []*gss.Head{root}

	for {
		expected := expectedTerminals(p.t, g, frontier)
		tokens, err := scan.Lex(pos, expected)
		if err != nil {
			return nil, err
		}

		// Reduce to a fixed point before shifting, keyed on the terminal(s)
		// actually present at this position (the real lookahead), not the
		// whole-frontier expected set scan.Lex was driven with: a sibling
		// head expecting some other terminal must not fire a reduce the
		// actual input doesn't support. An empty token list means end of
		// input, which canonical LR(1) items reduce on via the Stop symbol.
		actual := actualTerminals(g, tokens)
		if p.t.Options().PartialParse && len(tokens) > 0 {
			// Partial-parse mode: let STOP-keyed reduces fire too, even
			// though real input remains, so a frontier that has
			// genuinely reached a valid stopping point can surface an
			// Accept below instead of being forced to consume the rest
			// of the input.
			actual = append(actual, g.Stop())
		}
		for changed := true; changed; {
			changed = false
			for _, h := range frontier {
				for _, term := range actual {
					for _, code := range p.t.Actions(h.State, term) {
						if code == lr.ShiftAction || code == lr.AcceptAction {
							continue
						}
						if p.reduceOnce(forest, g2, nodeFor, h, code) {
							changed = true
						}
					}
				}
			}
			if changed {
				frontier = g2.Frontier(pos)
			}
		}

		if len(tokens) == 0 {
			break // STOP reached
		}
		if p.t.Options().PartialParse && partialAcceptReached(p.t, g, frontier) {
			break // a head accepted early; remaining input is discarded
		}

		var next []*gss.Head
		seenNext := map[*gss.Head]bool{}
		for _, h := range frontier {
			for _, tok := range tokens {
				term := g.Terminal(int32(tok.TokType()))
				if term == nil {
					continue
				}
				hasShift := false
				for _, code := range p.t.Actions(h.State, term) {
					if code == lr.ShiftAction {
						hasShift = true
					}
				}
				if !hasShift {
					continue
				}
				target, ok := p.t.Goto(h.State, term)
				if !ok {
					continue
				}
				nh, existed := g2.FindHead(target, pos+1)
				if !existed {
					nh = g2.NewHead(target, pos+1)
				}
				if _, ok := g2.AddEdge(nh, h, term.Name, tok); !ok {
					continue
				}
				leaf := forest.AddTerminal(term, tok.Span())
				nodeFor[nh] = leaf
				if !seenNext[nh] {
					seenNext[nh] = true
					next = append(next, nh)
				}
			}
		}
		if len(next) == 0 {
			return nil, &errors.ParseError{Pos: pos, Expected: expectedNames(expected)}
		}
		frontier = next
		pos++
	}

	result := &Result{Forest: forest}
	for _, h := range frontier {
		if n, ok := nodeFor[h]; ok && n.Symbol.Name == g.StartSymbol().Name &&
			partialAcceptReached(p.t, g, []*gss.Head{h}) {
			result.Roots = append(result.Roots, n)
		}
	}
	if len(result.Roots) == 0 {
		return nil, &errors.ParseError{Pos: pos, Expected: expectedNames(expectedTerminals(p.t, g, frontier))}
	}
	for _, r := range result.Roots {
		forest.SetRoot(r)
	}
	return result, nil
}

// reduceOnce applies one reduce action from head h, enumerating every
// GSS path of the right length (the "simultaneous reduction processing"
// the runtime performs across all ambiguous stack configurations at
// once), and returns whether it discovered a new head or edge.
func (p *Parser) reduceOnce(forest *sppf.Forest, g2 *gss.GSS, nodeFor map[*gss.Head]*sppf.SymbolNode, h *gss.Head, code int32) bool {
	prod, popCount := p.t.ProductionAt(code)
	rightNulled := p.t.IsRightNulled(code)
	changed := false

	for _, path := range gss.PathsOfLength(h, popCount) {
		base := h
		children := make([]*sppf.SymbolNode, popCount)
		// path[0] is the edge nearest h (the LAST RHS symbol); reverse
		// it so children end up in left-to-right RHS order.
		for i, e := range path {
			children[popCount-1-i] = nodeFor[e.From]
			base = e.To
		}
		if rightNulled {
			for i := popCount; i < len(prod.RHS); i++ {
				children = append(children, forest.AddEpsilonReduction(prod.RHS[i], prod, h.Pos))
			}
		}

		target, ok := p.t.Goto(base.State, prod.LHS)
		if !ok {
			continue
		}
		var span rnglr.Span
		if len(children) > 0 {
			span = children[0].Extent.Extend(children[len(children)-1].Extent)
		} else {
			span = rnglr.Span{h.Pos, h.Pos}
		}
		node := forest.AddReduction(prod.LHS, span, prod, children, rightNulled)

		nh, existed := g2.FindHead(target, h.Pos)
		if !existed {
			nh = g2.NewHead(target, h.Pos)
			changed = true
		}
		before := len(nh.Parents)
		// AddEdge also reports ok when it only packs another possibility
		// onto an existing edge; only a new edge counts as a change.
		if _, ok := g2.AddEdge(nh, base, prod.LHS.Name, node); ok && len(nh.Parents) > before {
			changed = true
		}
		nodeFor[nh] = node
	}
	return changed
}

// expectedTerminals unions every terminal with at least one action
// across the current frontier's heads, sorted by name — the lexer
// contract is driven by exactly this set, so equal-length lexical matches
// come back in name order rather than grammar declaration order.
func expectedTerminals(t *lr.Table, g *grammar.Grammar, frontier []*gss.Head) []*grammar.Symbol {
	seen := make(map[int32]bool)
	var out []*grammar.Symbol
	g.EachTerminal(func(term *grammar.Symbol) {
		if seen[term.Value] {
			return
		}
		for _, h := range frontier {
			if len(t.Actions(h.State, term)) > 0 {
				seen[term.Value] = true
				out = append(out, term)
				return
			}
		}
	})
	slices.SortFunc(out, func(a, b *grammar.Symbol) bool { return a.Name < b.Name })
	return out
}

// actualTerminals returns the distinct terminals actually present among
// tokens, or just the Stop symbol when tokens is empty (end of input),
// since completed items reduce on Stop as their lookahead rather than on
// any lexed token.
func actualTerminals(g *grammar.Grammar, tokens []rnglr.Token) []*grammar.Symbol {
	if len(tokens) == 0 {
		return []*grammar.Symbol{g.Stop()}
	}
	seen := make(map[int32]bool)
	var out []*grammar.Symbol
	for _, tok := range tokens {
		term := g.Terminal(int32(tok.TokType()))
		if term == nil || seen[term.Value] {
			continue
		}
		seen[term.Value] = true
		out = append(out, term)
	}
	return out
}

// partialAcceptReached reports whether some frontier head already holds
// an Accept action on STOP, the signal a PartialParse table uses to stop
// short of the real end of input.
func partialAcceptReached(t *lr.Table, g *grammar.Grammar, frontier []*gss.Head) bool {
	stop := g.Stop()
	for _, h := range frontier {
		for _, code := range t.Actions(h.State, stop) {
			if code == lr.AcceptAction {
				return true
			}
		}
	}
	return false
}

// expectedNames renders a set of expected terminals as their names, for
// a ParseError's Expected payload.
func expectedNames(terms []*grammar.Symbol) []string {
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Name
	}
	return names
}
