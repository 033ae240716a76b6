/*
Package sppf implements the Shared Packed Parse Forest the GLR runtime
builds: a DAG of symbol nodes, each optionally carrying more than one
"packed" alternative derivation when the input was locally ambiguous.
Sharing means any two reductions that would otherwise build identical
sub-trees collapse onto the same node, keyed by production, span and
children rather than rebuilt from scratch; packing means a node that
really does have more than one valid derivation keeps all of them,
rather than the runtime being forced to pick one.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package sppf

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/rnglr"
	"github.com/parsekit/rnglr/grammar"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer.P("pkg", "sppf")
}

// SymbolNode is a forest node labeled with a grammar symbol and the
// input span it covers. Two reductions of the same symbol over the same
// span always reach the very same SymbolNode (hence "shared").
type SymbolNode struct {
	Symbol *grammar.Symbol
	Extent rnglr.Span
	packed []*PackedNode // non-terminal alternatives; empty for terminals
}

// IsTerminal reports whether this node is a terminal (leaf) node.
func (n *SymbolNode) IsTerminal() bool {
	return n.Symbol.IsTerminal()
}

// Alternatives returns every packed alternative derivation for this
// symbol over its span. A non-ambiguous reduction has exactly one.
func (n *SymbolNode) Alternatives() []*PackedNode {
	return n.packed
}

// Ambiguous reports whether more than one derivation was packed here.
func (n *SymbolNode) Ambiguous() bool {
	return len(n.packed) > 1
}

func (n *SymbolNode) String() string {
	return fmt.Sprintf("(%s, %d-%d)", n.Symbol.Name, n.Extent.From(), n.Extent.To())
}

// PackedNode is one alternative derivation of a SymbolNode: the
// production used, and the child SymbolNodes for each RHS symbol (in
// order; for a right-nulled reduction, trailing children are synthesized
// epsilon nodes rather than omitted, so consumers never need to special
// case the right-nulled transform).
type PackedNode struct {
	Prod        *grammar.Production
	Children    []*SymbolNode
	RightNulled bool
}

func (p *PackedNode) String() string {
	return fmt.Sprintf("packed(%s)", p.Prod)
}

// Forest is a Shared Packed Parse Forest under construction. Nodes are
// deduplicated by a structural hash of (symbol, span) for SymbolNodes
// and (edge identity, production, children) for PackedNodes, so that a
// GLR parse which discovers the same reduction along two different GSS
// paths converges onto one packed alternative instead of two.
type Forest struct {
	symbolNodes map[string]*SymbolNode
	packedSeen  map[string]*PackedNode
	root        *SymbolNode
}

// NewForest creates an empty forest.
func NewForest() *Forest {
	return &Forest{
		symbolNodes: make(map[string]*SymbolNode),
		packedSeen:  make(map[string]*PackedNode),
	}
}

func symbolKey(sym *grammar.Symbol, span rnglr.Span) string {
	h, err := structhash.Hash(struct {
		Tag   int8
		Value int32
		From  uint64
		To    uint64
	}{int8(sym.Tag), sym.Value, span.From(), span.To()}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// AddTerminal returns the (shared) terminal SymbolNode for sym's span,
// creating it on first use.
func (f *Forest) AddTerminal(sym *grammar.Symbol, span rnglr.Span) *SymbolNode {
	key := symbolKey(sym, span)
	if n, ok := f.symbolNodes[key]; ok {
		return n
	}
	n := &SymbolNode{Symbol: sym, Extent: span}
	f.symbolNodes[key] = n
	return n
}

// AddEpsilonReduction returns the (shared) SymbolNode for a non-terminal
// derived entirely via epsilon productions at a single input position —
// the node carries a single packed alternative with no children.
func (f *Forest) AddEpsilonReduction(lhs *grammar.Symbol, prod *grammar.Production, pos uint64) *SymbolNode {
	span := rnglr.Span{pos, pos}
	return f.AddReduction(lhs, span, prod, nil, false)
}

// AddReduction returns the (shared) SymbolNode for lhs over span, adding
// a new packed alternative for prod unless one is already packed there.
// A production reducing the same (symbol, span) twice always represents
// the same derivation, varying only in how many RHS symbols were really
// popped versus synthesized by the right-nulled transform: when the new
// discovery has more children than the one already packed (the
// right-nulled reduce fired first, or vice versa), its children replace
// the existing alternative's in place rather than the node gaining a
// second, spurious alternative.
func (f *Forest) AddReduction(lhs *grammar.Symbol, span rnglr.Span, prod *grammar.Production, children []*SymbolNode, rightNulled bool) *SymbolNode {
	key := symbolKey(lhs, span)
	n, ok := f.symbolNodes[key]
	if !ok {
		n = &SymbolNode{Symbol: lhs, Extent: span}
		f.symbolNodes[key] = n
	}
	pkey := packedKey(key, prod)
	if existing, seen := f.packedSeen[pkey]; seen {
		if len(children) > len(existing.Children) {
			assertExtendsPrefix(existing.Children, children)
			existing.Children = children
			existing.RightNulled = rightNulled
		}
		return n
	}
	pn := &PackedNode{Prod: prod, Children: children, RightNulled: rightNulled}
	f.packedSeen[pkey] = pn
	n.packed = append(n.packed, pn)
	return n
}

// assertExtendsPrefix panics unless old is a strict prefix of new — the
// invariant that makes replacing a packed alternative's children in
// place correct rather than silently discarding a different derivation.
func assertExtendsPrefix(old, new []*SymbolNode) {
	for i, c := range old {
		if new[i] != c {
			panic(fmt.Sprintf("sppf: right-nulled replacement at index %d does not extend the existing prefix", i))
		}
	}
}

// packedKey identifies a packed alternative by symbol, production and
// arity — not by the identity of its children — so that a right-nulled
// rediscovery of the same production is recognized as the same
// alternative (see AddReduction) instead of comparing hashed children.
func packedKey(symKey string, prod *grammar.Production) string {
	h, err := structhash.Hash(struct {
		Sym     string
		ProdIdx int
	}{symKey, prod.Index}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// SetRoot designates n as the forest's root (the accepted parse's top
// symbol, spanning the whole input).
func (f *Forest) SetRoot(n *SymbolNode) {
	f.root = n
}

// Root returns the forest's root node, or nil if the parse has not
// accepted yet.
func (f *Forest) Root() *SymbolNode {
	return f.root
}

// CountSolutions returns the number of distinct parse trees represented
// by the forest rooted at n: the sum, over every packed alternative, of
// the product of each child's own solution count (terminal and
// zero-child nodes count as exactly 1 solution). Shared sub-forests are
// memoized so that a DAG with exponentially many trees is still counted
// in time proportional to its node count.
func (f *Forest) CountSolutions(n *SymbolNode) uint64 {
	return countMemo(n, make(map[*SymbolNode]uint64))
}

func countMemo(n *SymbolNode, memo map[*SymbolNode]uint64) uint64 {
	if c, ok := memo[n]; ok {
		return c
	}
	if n.IsTerminal() || len(n.packed) == 0 {
		memo[n] = 1
		return 1
	}
	var total uint64
	for _, alt := range n.packed {
		product := uint64(1)
		for _, child := range alt.Children {
			product *= countMemo(child, memo)
		}
		total += product
	}
	memo[n] = total
	return total
}

// Dump logs every symbol node and its packed alternatives, for debugging.
func (f *Forest) Dump() {
	for _, n := range f.symbolNodes {
		tracer().Debugf("%s : %d alternative(s)", n, len(n.packed))
	}
}
