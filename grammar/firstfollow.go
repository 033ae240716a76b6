package grammar

import (
	"github.com/parsekit/rnglr/errors"
)

// symSet is a small bitset over dense terminal indices, plus a distinguished
// bit for EMPTY. Good enough for the terminal/non-terminal counts grammars
// in this toolbox deal with; avoids pulling in a generic set type for what
// is, at its core, array-indexed membership.
type symSet struct {
	bits  []bool
	empty bool // EMPTY ∈ this set
}

func newSymSet(n int) *symSet {
	return &symSet{bits: make([]bool, n)}
}

func (s *symSet) add(v int32) bool {
	if s.bits[v] {
		return false
	}
	s.bits[v] = true
	return true
}

func (s *symSet) addEmpty() bool {
	if s.empty {
		return false
	}
	s.empty = true
	return true
}

func (s *symSet) unionFrom(other *symSet, includeEmpty bool) bool {
	changed := false
	for i, b := range other.bits {
		if b && !s.bits[i] {
			s.bits[i] = true
			changed = true
		}
	}
	if includeEmpty && other.empty && !s.empty {
		s.empty = true
		changed = true
	}
	return changed
}

// Terminals returns the terminal token values present in the set, sorted.
func (s *symSet) Terminals() []int32 {
	out := make([]int32, 0, len(s.bits))
	for i, b := range s.bits {
		if b {
			out = append(out, int32(i))
		}
	}
	return out
}

// Has reports whether terminal v is a member.
func (s *symSet) Has(v int32) bool {
	return v >= 0 && int(v) < len(s.bits) && s.bits[v]
}

// HasEmpty reports whether EMPTY is a member.
func (s *symSet) HasEmpty() bool {
	return s.empty
}

// Analysis holds the fixed-point FIRST/FOLLOW sets of a Grammar, computed
// once and immutable thereafter.
type Analysis struct {
	g      *Grammar
	first  map[int32]*symSet // by non-terminal value
	tfirst map[int32]*symSet // by terminal value (values overlap non-terminal ones)
	follow map[int32]*symSet // by non-terminal value only
}

// firstSet returns the FIRST set of sym from the map for its kind.
func (a *Analysis) firstSet(sym *Symbol) *symSet {
	if sym.IsTerminal() {
		return a.tfirst[sym.Value]
	}
	return a.first[sym.Value]
}

// Grammar returns the grammar this analysis was computed for.
func (a *Analysis) Grammar() *Grammar {
	return a.g
}

// Analyze computes FIRST and FOLLOW for g by fixed-point iteration (§4.1),
// and validates that no symbol has an empty FIRST set (left-infinite
// recursion / unreachable symbol).
func Analyze(g *Grammar) (*Analysis, error) {
	a := &Analysis{
		g:      g,
		first:  make(map[int32]*symSet),
		tfirst: make(map[int32]*symSet),
		follow: make(map[int32]*symSet),
	}
	n := g.TerminalCount()

	for _, t := range g.terminals {
		s := newSymSet(n)
		s.add(t.Value)
		a.tfirst[t.Value] = s
	}
	for _, nt := range g.nonterminals {
		a.first[nt.Value] = newSymSet(n)
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.rules {
			lhsSet := a.first[p.LHS.Value]
			if len(p.RHS) == 0 {
				if lhsSet.addEmpty() {
					changed = true
				}
				continue
			}
			allNullableSoFar := true
			for _, sym := range p.RHS {
				symFirst := a.firstSet(sym)
				if lhsSet.unionFrom(symFirst, false) {
					changed = true
				}
				if !symFirst.HasEmpty() {
					allNullableSoFar = false
					break
				}
			}
			if allNullableSoFar {
				if lhsSet.addEmpty() {
					changed = true
				}
			}
		}
	}

	for _, nt := range g.nonterminals {
		a.follow[nt.Value] = newSymSet(n)
	}
	a.follow[g.StartSymbol().Value].add(g.Stop().Value)

	changed = true
	for changed {
		changed = false
		for _, p := range g.rules {
			for i, sym := range p.RHS {
				if sym.IsTerminal() {
					continue
				}
				beta := p.RHS[i+1:]
				betaFirst := a.firstOfSequence(beta)
				if a.follow[sym.Value].unionFrom(betaFirst, false) {
					changed = true
				}
				if betaFirst.HasEmpty() || len(beta) == 0 {
					if a.follow[sym.Value].unionFrom(a.follow[p.LHS.Value], false) {
						changed = true
					}
				}
			}
		}
	}

	for _, sym := range g.nonterminals {
		if len(a.first[sym.Value].Terminals()) == 0 && !a.first[sym.Value].HasEmpty() {
			return nil, errors.NewGrammarError(g.Name,
				sym.Name+" has an empty FIRST set; it is unreachable or left-infinitely recursive").
				WithSymbol(sym.Name)
		}
	}
	return a, nil
}

// firstOfSequence computes FIRST of an ordered symbol sequence (§4.1): the
// union of FIRST(X1), and FIRST(X2) if X1 is nullable, and so on; EMPTY is
// included only if every symbol in the sequence is nullable.
func (a *Analysis) firstOfSequence(seq []*Symbol) *symSet {
	result := newSymSet(a.g.TerminalCount())
	allNullable := true
	for _, sym := range seq {
		symFirst := a.firstSet(sym)
		result.unionFrom(symFirst, false)
		if !symFirst.HasEmpty() {
			allNullable = false
			break
		}
	}
	if allNullable {
		result.addEmpty()
	}
	return result
}

// First returns the FIRST-set of a grammar symbol, as terminal token values.
// EMPTY membership is reported separately via FirstHasEmpty.
func (a *Analysis) First(sym *Symbol) []int32 {
	return a.firstSet(sym).Terminals()
}

// FirstHasEmpty reports whether EMPTY ∈ FIRST(sym), i.e. sym ⇒* ε.
func (a *Analysis) FirstHasEmpty(sym *Symbol) bool {
	return a.firstSet(sym).HasEmpty()
}

// FirstOfSequence computes FIRST of β·L: FIRST of sequence beta, followed by
// the lookaheads in la when beta is nullable (used by LR(1) item closure,
// §4.2).
func (a *Analysis) FirstOfSequence(beta []*Symbol, la []int32) []int32 {
	betaFirst := a.firstOfSequence(beta)
	result := append([]int32(nil), betaFirst.Terminals()...)
	if betaFirst.HasEmpty() || len(beta) == 0 {
		result = append(result, la...)
	}
	return dedupSorted(result)
}

// Follow returns the FOLLOW-set of a non-terminal, as terminal token values
// (including STOP where applicable).
func (a *Analysis) Follow(nt *Symbol) []int32 {
	return a.follow[nt.Value].Terminals()
}

// IsNullable reports whether sym derives ε.
func (a *Analysis) IsNullable(sym *Symbol) bool {
	if sym.IsTerminal() {
		return false
	}
	return a.first[sym.Value].HasEmpty()
}

// SequenceIsNullable reports whether every symbol of seq is nullable
// (used by the right-nulled transform, §4.3).
func (a *Analysis) SequenceIsNullable(seq []*Symbol) bool {
	for _, sym := range seq {
		if !a.IsNullable(sym) {
			return false
		}
	}
	return true
}

func dedupSorted(vals []int32) []int32 {
	if len(vals) < 2 {
		return vals
	}
	seen := make(map[int32]bool, len(vals))
	out := vals[:0]
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
