package sppf

import (
	"testing"

	"github.com/parsekit/rnglr"
	"github.com/parsekit/rnglr/grammar"
)

func testGrammar(t *testing.T) *grammar.Grammar {
	b := grammar.NewBuilder("Arith")
	b.LHS("E").N("E").T("+", 1).N("E").End()
	b.LHS("E").N("E").T("*", 2).N("E").End()
	b.LHS("E").T("num", 3).End()
	g, err := b.Build()
	if err != nil {
		t.Fatalf("building grammar: %v", err)
	}
	return g
}

func TestTerminalNodesAreShared(t *testing.T) {
	g := testGrammar(t)
	f := NewForest()
	num := g.Symbol("num")
	n1 := f.AddTerminal(num, rnglr.Span{0, 1})
	n2 := f.AddTerminal(num, rnglr.Span{0, 1})
	if n1 != n2 {
		t.Fatalf("expected identical terminal nodes to share an instance")
	}
}

func TestAmbiguousReductionPacksTwoAlternatives(t *testing.T) {
	g := testGrammar(t)
	f := NewForest()
	e := g.Symbol("E")
	plus := g.Rule(1) // E -> E + E (declaration order: rule 1 after augmented rule 0)
	star := g.Rule(2) // E -> E * E

	n1 := f.AddTerminal(g.Symbol("num"), rnglr.Span{0, 1})
	n2 := f.AddTerminal(g.Symbol("num"), rnglr.Span{2, 3})
	n3 := f.AddTerminal(g.Symbol("num"), rnglr.Span{4, 5})

	left := f.AddReduction(e, rnglr.Span{0, 3}, plus, []*SymbolNode{n1, n2}, false)
	root := f.AddReduction(e, rnglr.Span{0, 5}, plus, []*SymbolNode{left, n3}, false)
	root2 := f.AddReduction(e, rnglr.Span{0, 5}, star, []*SymbolNode{left, n3}, false)

	if root != root2 {
		t.Fatalf("expected same span+symbol to share a SymbolNode")
	}
	if !root.Ambiguous() {
		t.Fatalf("expected 2 packed alternatives for the same span")
	}
	if len(root.Alternatives()) != 2 {
		t.Fatalf("expected exactly 2 alternatives, got %d", len(root.Alternatives()))
	}
}

func TestAddReductionDedupsIdenticalAlternative(t *testing.T) {
	g := testGrammar(t)
	f := NewForest()
	e := g.Symbol("E")
	plus := g.Rule(1)
	n1 := f.AddTerminal(g.Symbol("num"), rnglr.Span{0, 1})
	n2 := f.AddTerminal(g.Symbol("num"), rnglr.Span{2, 3})

	r1 := f.AddReduction(e, rnglr.Span{0, 3}, plus, []*SymbolNode{n1, n2}, false)
	r2 := f.AddReduction(e, rnglr.Span{0, 3}, plus, []*SymbolNode{n1, n2}, false)
	if r1 != r2 || len(r1.Alternatives()) != 1 {
		t.Fatalf("expected identical (prod,children) to dedup to 1 alternative")
	}
}

// TestAddReductionReplacesShorterRightNulledAlternative mirrors a
// right-nulled rediscovery: the same production reduces the same span
// twice, first via a right-nulled (fewer real, more synthesized)
// children list, later via the fully matched one. The fuller list must
// replace the shorter one in place rather than create a second packed
// alternative.
func TestAddReductionReplacesShorterRightNulledAlternative(t *testing.T) {
	g := testGrammar(t)
	f := NewForest()
	e := g.Symbol("E")
	plus := g.Rule(1)
	n1 := f.AddTerminal(g.Symbol("num"), rnglr.Span{0, 1})
	n2 := f.AddTerminal(g.Symbol("num"), rnglr.Span{2, 3})

	short := f.AddReduction(e, rnglr.Span{0, 3}, plus, []*SymbolNode{n1}, true)
	if len(short.Alternatives()) != 1 {
		t.Fatalf("expected 1 alternative after first discovery, got %d", len(short.Alternatives()))
	}

	full := f.AddReduction(e, rnglr.Span{0, 3}, plus, []*SymbolNode{n1, n2}, false)
	if full != short {
		t.Fatalf("expected the same shared SymbolNode")
	}
	if len(full.Alternatives()) != 1 {
		t.Fatalf("expected the fuller rediscovery to replace, not add, an alternative; got %d", len(full.Alternatives()))
	}
	if len(full.Alternatives()[0].Children) != 2 {
		t.Fatalf("expected the replaced alternative to carry the longer children list")
	}
}

// TestCountSolutionsTwoWayAmbiguity mirrors the testable-properties
// scenario: parsing "1+2*3" under E→E+E|E*E|num yields exactly 2 trees.
func TestCountSolutionsTwoWayAmbiguity(t *testing.T) {
	g := testGrammar(t)
	f := NewForest()
	e := g.Symbol("E")
	plus := g.Rule(1)
	star := g.Rule(2)

	n1 := f.AddTerminal(g.Symbol("num"), rnglr.Span{0, 1})
	n2 := f.AddTerminal(g.Symbol("num"), rnglr.Span{2, 3})
	n3 := f.AddTerminal(g.Symbol("num"), rnglr.Span{4, 5})

	sumLeft := f.AddReduction(e, rnglr.Span{0, 3}, plus, []*SymbolNode{n1, n2}, false)
	prodRight := f.AddReduction(e, rnglr.Span{2, 5}, star, []*SymbolNode{n2, n3}, false)

	root := f.AddReduction(e, rnglr.Span{0, 5}, plus, []*SymbolNode{sumLeft, n3}, false)
	root = f.AddReduction(e, rnglr.Span{0, 5}, star, []*SymbolNode{n1, prodRight}, false)
	f.SetRoot(root)

	if got := f.CountSolutions(root); got != 2 {
		t.Fatalf("expected 2 solutions, got %d", got)
	}
}

// countingListener accumulates a flat trace of EnterRule/Terminal
// visits, used to assert TopDown walks a single disambiguated tree.
type countingListener struct {
	visits int
}

func (c *countingListener) EnterRule(sym *grammar.Symbol, rhs []*RuleNode, ctxt RuleCtxt) bool {
	c.visits++
	return true
}

func (c *countingListener) ExitRule(sym *grammar.Symbol, rhs []*RuleNode, ctxt RuleCtxt) interface{} {
	return nil
}

func (c *countingListener) Terminal(tokType int32, lexeme interface{}, ctxt RuleCtxt) interface{} {
	c.visits++
	return nil
}

func TestTopDownVisitsEveryNode(t *testing.T) {
	g := testGrammar(t)
	f := NewForest()
	e := g.Symbol("E")
	plus := g.Rule(1)
	n1 := f.AddTerminal(g.Symbol("num"), rnglr.Span{0, 1})
	n2 := f.AddTerminal(g.Symbol("num"), rnglr.Span{2, 3})
	root := f.AddReduction(e, rnglr.Span{0, 3}, plus, []*SymbolNode{n1, n2}, false)
	f.SetRoot(root)

	cur := f.SetCursor(nil, nil)
	l := &countingListener{}
	cur.TopDown(nil, l, LtoR)
	if l.visits != 3 { // 1 rule + 2 terminals
		t.Fatalf("expected 3 visits, got %d", l.visits)
	}
}
