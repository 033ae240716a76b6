package lr

import (
	"github.com/parsekit/rnglr/grammar"
	"github.com/parsekit/rnglr/lr/iteratable"
)

// newItemSet creates an iteratable.Set of the given items, configured
// with Item equality, matching the teacher's local newItemSet helper.
func newItemSet(items ...Item) *iteratable.Set {
	vals := make([]interface{}, len(items))
	for i, it := range items {
		vals[i] = it
	}
	return iteratable.NewSetWithEqual(itemsEqual, vals...)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// closure computes the closure of a kernel item set under the grammar's
// productions (the "closure/GOTO operators" of the item-closure engine):
// for every item [A → α·Bβ, a] in the set, and every production B → γ,
// add [B → ·γ, b] for each b in FIRST(β·a), iterating to a fixed point.
func closure(g *grammar.Grammar, an *grammar.Analysis, kernel *iteratable.Set) *iteratable.Set {
	C := kernel.Copy()
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		B := item.DotSymbol()
		if B == nil || B.IsTerminal() {
			continue
		}
		lookaheads := an.FirstOfSequence(item.Rest(), []int32{item.Lookahead})
		for _, prod := range g.RulesFor(B) {
			for _, la := range lookaheads {
				New := newItemSet(Item{Prod: prod, Dot: 0, Lookahead: la})
				New.Difference(C) // New keeps only the items C lacks
				if !New.Empty() {
					C.Union(New)
				}
			}
		}
	}
	return C
}

// gotoSet computes GOTO(itemSet, X): advance every item in itemSet whose
// dot-symbol is X, then close the result.
func gotoSet(g *grammar.Grammar, an *grammar.Analysis, itemSet *iteratable.Set, X *grammar.Symbol) *iteratable.Set {
	kernel := newItemSet()
	for _, x := range itemSet.Values() {
		item := asItem(x)
		if sym := item.DotSymbol(); sym != nil && sym.Value == X.Value && sym.IsTerminal() == X.IsTerminal() {
			kernel.Add(item.Advance())
		}
	}
	if kernel.Empty() {
		return kernel
	}
	return closure(g, an, kernel)
}
