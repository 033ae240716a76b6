package sppf

/*
License

Governed by a 3-Clause BSD license, see the root of this module.
*/

import (
	"github.com/parsekit/rnglr"
	"github.com/parsekit/rnglr/grammar"
)

// Pruner decides, for an ambiguous SymbolNode, which packed alternative
// a Cursor should descend into. Returning true means "skip this one,
// keep looking"; a Pruner that always returns false effectively always
// picks the first alternative considered.
type Pruner interface {
	Prune(sym *SymbolNode, alt *PackedNode) bool
}

type dontCarePruner struct{}

func (dontCarePruner) Prune(sym *SymbolNode, alt *PackedNode) bool {
	return false
}

// DontCarePruner never prunes an alternative, so a Cursor always
// descends into the first packed alternative of an ambiguous node. It is
// the default when SetCursor is given a nil Pruner.
var DontCarePruner Pruner = dontCarePruner{}

func (f *Forest) choose(n *SymbolNode, pruner Pruner) *PackedNode {
	for _, alt := range n.packed {
		if !pruner.Prune(n, alt) {
			return alt
		}
	}
	if len(n.packed) > 0 {
		return n.packed[0]
	}
	return nil
}

// Cursor is a movable mark within a forest, for walking a single
// (disambiguated) parse tree out of a possibly-ambiguous forest.
type Cursor struct {
	forest *Forest
	start  *SymbolNode
	pruner Pruner
}

// SetCursor creates a Cursor rooted at the forest's root (or at start,
// if non-nil). A nil pruner defaults to DontCarePruner.
func (f *Forest) SetCursor(start *SymbolNode, pruner Pruner) *Cursor {
	if start == nil {
		start = f.root
	}
	if start == nil {
		return nil
	}
	if pruner == nil {
		pruner = DontCarePruner
	}
	return &Cursor{forest: f, start: start, pruner: pruner}
}

// Direction controls the order children are visited in.
type Direction int

const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Listener receives callbacks as TopDown walks a disambiguated parse
// tree. EnterRule's return value controls whether the walk descends into
// that rule's children; ExitRule and Terminal return values are
// propagated upward as the Value of the corresponding child RuleNode.
type Listener interface {
	EnterRule(sym *grammar.Symbol, rhs []*RuleNode, ctxt RuleCtxt) bool
	ExitRule(sym *grammar.Symbol, rhs []*RuleNode, ctxt RuleCtxt) interface{}
	Terminal(tokType int32, lexeme interface{}, ctxt RuleCtxt) interface{}
}

// RuleCtxt carries positional context to a Listener callback.
type RuleCtxt struct {
	Span      rnglr.Span
	Level     int
	RuleIndex int // -1 for terminals
}

// RuleNode is a node visited during a TopDown walk: either a terminal or
// the LHS of a chosen production alternative.
type RuleNode struct {
	node  *SymbolNode
	Value interface{}
}

// Symbol returns the grammar symbol this node refers to.
func (rn *RuleNode) Symbol() *grammar.Symbol { return rn.node.Symbol }

// Span returns the input span this node covers.
func (rn *RuleNode) Span() rnglr.Span { return rn.node.Extent }

// TopDown walks the tree rooted at n (or the cursor's start node, if n
// is nil), applying listener at each node, and returns the value the
// root's ExitRule/Terminal call produced.
func (c *Cursor) TopDown(n *SymbolNode, listener Listener, dir Direction) interface{} {
	if n == nil {
		n = c.start
	}
	return c.walk(n, listener, dir, 0)
}

func (c *Cursor) walk(n *SymbolNode, listener Listener, dir Direction, level int) interface{} {
	if n.IsTerminal() {
		ctxt := RuleCtxt{Span: n.Extent, Level: level, RuleIndex: -1}
		return listener.Terminal(n.Symbol.Value, nil, ctxt)
	}
	alt := c.forest.choose(n, c.pruner)
	if alt == nil {
		ctxt := RuleCtxt{Span: n.Extent, Level: level, RuleIndex: -1}
		return listener.ExitRule(n.Symbol, nil, ctxt)
	}
	rhs := make([]*RuleNode, len(alt.Children))
	for i, ch := range alt.Children {
		idx := i
		if dir == RtoL {
			idx = len(alt.Children) - 1 - i
		}
		rhs[idx] = &RuleNode{node: ch}
	}
	ctxt := RuleCtxt{Span: n.Extent, Level: level, RuleIndex: alt.Prod.Index}
	if !listener.EnterRule(n.Symbol, rhs, ctxt) {
		return listener.ExitRule(n.Symbol, rhs, ctxt)
	}
	for _, child := range rhs {
		child.Value = c.walk(child.node, listener, dir, level+1)
	}
	return listener.ExitRule(n.Symbol, rhs, ctxt)
}
