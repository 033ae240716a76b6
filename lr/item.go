package lr

import (
	"fmt"

	"github.com/parsekit/rnglr/grammar"
)

// Item is a canonical LR(1) item: a production with a dot position and a
// single lookahead terminal. Item sets (states of the CFSM) group
// multiple Items sharing the same core (production, dot) but differing
// lookaheads as distinct elements. BuildCFSM merges states whose item
// cores agree, unioning their lookaheads.
type Item struct {
	Prod      *grammar.Production
	Dot       int
	Lookahead int32
}

// AtEnd reports whether the dot has reached the end of the RHS, i.e. this
// item is ready to reduce.
func (it Item) AtEnd() bool {
	return it.Dot >= len(it.Prod.RHS)
}

// DotSymbol returns the symbol immediately after the dot, or nil if the
// dot is at the end.
func (it Item) DotSymbol() *grammar.Symbol {
	if it.AtEnd() {
		return nil
	}
	return it.Prod.RHS[it.Dot]
}

// Advance returns the item with the dot moved one position to the right.
func (it Item) Advance() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// Rest returns the RHS symbols after the dot symbol: β in [A → α·Bβ].
func (it Item) Rest() []*grammar.Symbol {
	if it.AtEnd() {
		return nil
	}
	return it.Prod.RHS[it.Dot+1:]
}

func (it Item) String() string {
	s := fmt.Sprintf("[%s →", it.Prod.LHS.Name)
	for i, sym := range it.Prod.RHS {
		if i == it.Dot {
			s += " ·"
		}
		s += " " + sym.Name
	}
	if it.Dot == len(it.Prod.RHS) {
		s += " ·"
	}
	return fmt.Sprintf("%s , %d]", s, it.Lookahead)
}

// itemsEqual is the equality predicate used by iteratable.Set when
// holding Items: two items are the same element of a set iff their
// (production, dot, lookahead) triple matches.
func itemsEqual(a, b interface{}) bool {
	ia, ib := a.(Item), b.(Item)
	return ia.Prod.Index == ib.Prod.Index && ia.Dot == ib.Dot && ia.Lookahead == ib.Lookahead
}
