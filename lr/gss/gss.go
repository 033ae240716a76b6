/*
Package gss implements the graph-structured stack (GSS) the GLR runtime
drives: a DAG of heads, one per active parse alternative at the current
input position, connected by parent edges carrying a "possibility list"
of the alternative sub-derivations that justify the edge.

Heads are grouped into frontiers, one per input position: all heads of
the current frontier are processed (reduced) before the runtime shifts
the next token and creates the next frontier. Cycle rejection at
edge-insertion time keeps a zero-length-derivation chain from looping a
single frontier forever.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package gss

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Head is a node of the graph-structured stack: a parser state active at
// a given input position, reached via one or more parent Edges.
type Head struct {
	ID      int
	State   int
	Pos     uint64 // input position (frontier) this head belongs to
	Parents []*Edge
}

// Edge is a parent edge from a Head back to an earlier Head, labeled
// with the grammar symbol that was shifted or reduced to cross it, and
// carrying the possibility list of sub-derivations (SPPF packed-node
// candidates) that justify this edge when more than one reduction
// produced the same edge.
type Edge struct {
	From         *Head // the head this edge originates from (later position)
	To           *Head // the head this edge points to (earlier position)
	Possibility  []interface{} // SPPF node(s) labeling this edge; opaque to gss
	label        string
}

func (e *Edge) String() string {
	return fmt.Sprintf("%d -%s-> %d", e.From.ID, e.label, e.To.ID)
}

// GSS is the graph-structured stack for a single parse run: all heads
// created so far, grouped by frontier (input position).
type GSS struct {
	heads     *linkedhashset.Set // of *Head, insertion order preserved
	frontiers map[uint64][]*Head
	nextID    int
}

// New creates an empty GSS.
func New() *GSS {
	return &GSS{heads: linkedhashset.New(), frontiers: make(map[uint64][]*Head)}
}

// NewHead creates a head in state at position pos, with no parents yet
// (used for the root head of a fresh parse).
func (g *GSS) NewHead(state int, pos uint64) *Head {
	h := &Head{ID: g.nextID, State: state, Pos: pos}
	g.nextID++
	g.heads.Add(h)
	g.frontiers[pos] = append(g.frontiers[pos], h)
	return h
}

// AllHeads returns every head created during this parse run, in
// creation order, for diagnostics and debug dumps.
func (g *GSS) AllHeads() []*Head {
	vals := g.heads.Values()
	out := make([]*Head, len(vals))
	for i, v := range vals {
		out[i] = v.(*Head)
	}
	return out
}

// Frontier returns every head at input position pos.
func (g *GSS) Frontier(pos uint64) []*Head {
	return g.frontiers[pos]
}

// FindHead returns an existing head at (state, pos), if one was already
// created — heads are shared ("stack compaction") so that two parse
// alternatives which reach the same state at the same position merge
// into one head with multiple parent edges, rather than diverging.
func (g *GSS) FindHead(state int, pos uint64) (*Head, bool) {
	for _, h := range g.frontiers[pos] {
		if h.State == state {
			return h, true
		}
	}
	return nil, false
}

// AddEdge connects from -> to, labeled and carrying possibility. If an
// edge between the same two heads with the same label already exists,
// possibility is appended to that edge's possibility list instead of
// creating a duplicate edge ("local ambiguity packing"). AddEdge refuses
// to create an edge that would make to reachable from itself (a cycle),
// returning ok=false; a hidden-left-recursive, zero-length derivation
// is the only way this can be attempted, and silently accepting it would
// loop the reducer forever on this frontier.
func (g *GSS) AddEdge(from, to *Head, label string, possibility interface{}) (*Edge, bool) {
	if from == to || reaches(to, from) {
		return nil, false
	}
	for _, e := range from.Parents {
		if e.To == to && e.label == label {
			e.Possibility = append(e.Possibility, possibility)
			return e, true
		}
	}
	e := &Edge{From: from, To: to, label: label, Possibility: []interface{}{possibility}}
	from.Parents = append(from.Parents, e)
	return e, true
}

// reaches reports whether target is reachable from h by following parent
// edges (used only for the cycle check in AddEdge; GSS graphs are small
// enough per frontier that a DFS here is cheap).
func reaches(h, target *Head) bool {
	if h == target {
		return true
	}
	for _, e := range h.Parents {
		if reaches(e.To, target) {
			return true
		}
	}
	return false
}

// PathsOfLength enumerates every distinct path of exactly n parent edges
// starting at h, via recursive depth-first traversal, returning each
// path as the ordered list of edges traversed (closest to h first). The
// reducer uses it to find every way to pop a production's RHS off the
// stack.
func PathsOfLength(h *Head, n int) [][]*Edge {
	if n == 0 {
		return [][]*Edge{{}}
	}
	var out [][]*Edge
	var walk func(cur *Head, depth int, path []*Edge)
	walk = func(cur *Head, depth int, path []*Edge) {
		if depth == n {
			cp := make([]*Edge, len(path))
			copy(cp, path)
			out = append(out, cp)
			return
		}
		for _, e := range cur.Parents {
			walk(e.To, depth+1, append(path, e))
		}
	}
	walk(h, 0, nil)
	return out
}
