package lr

import (
	"testing"

	"github.com/parsekit/rnglr/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mergeGrammar is built so that the same kernel core (A → e ·) is reached
// via two different GOTO paths carrying different lookaheads: once behind
// "a" (lookahead "c") and once behind "b" (lookahead "d"). Canonical LR(1)
// state construction must merge these into a single state rather than
// keeping two states that differ only in which lookahead they reduce on.
func mergeGrammar(t *testing.T) (*grammar.Grammar, *grammar.Production) {
	b := grammar.NewBuilder("S")
	b.LHS("S").T("a", 1).N("A").T("c", 2).End()
	b.LHS("S").T("b", 3).N("A").T("d", 4).End()
	b.LHS("A").T("e", 5).End()
	g, err := b.Build()
	require.NoError(t, err)
	var aProd *grammar.Production
	for _, p := range g.Rules() {
		if p.LHS.Name == "A" {
			aProd = p
		}
	}
	require.NotNil(t, aProd)
	return g, aProd
}

func TestBuildCFSMMergesStatesByKernelCoreNotLookahead(t *testing.T) {
	g, aProd := mergeGrammar(t)
	an, err := grammar.Analyze(g)
	require.NoError(t, err)
	cfsm := BuildCFSM(g, an)

	var matches []*State
	for _, s := range cfsm.states {
		for _, x := range s.Items.Values() {
			it := asItem(x)
			if it.Prod.Index == aProd.Index && it.Dot == 1 {
				matches = append(matches, s)
				break
			}
		}
	}
	require.Len(t, matches, 1, "states with core (A -> e ., _) must be merged into one state")

	merged := matches[0]
	cSym, dSym := g.Symbol("c"), g.Symbol("d")
	var sawC, sawD bool
	for _, x := range merged.Items.Values() {
		it := asItem(x)
		if it.Prod.Index != aProd.Index || it.Dot != 1 {
			continue
		}
		switch it.Lookahead {
		case cSym.Value:
			sawC = true
		case dSym.Value:
			sawD = true
		}
	}
	assert.True(t, sawC, "merged state must keep the lookahead from the \"a\" path")
	assert.True(t, sawD, "merged state must keep the lookahead merged in from the \"b\" path")
}

func TestSameCoreDifferentLookaheadSetsAreEqualCoreButNotEqualItems(t *testing.T) {
	g, aProd := mergeGrammar(t)
	reduceItemC := Item{Prod: aProd, Dot: 1, Lookahead: g.Symbol("c").Value}
	reduceItemD := Item{Prod: aProd, Dot: 1, Lookahead: g.Symbol("d").Value}

	assert.Equal(t, coreOf(reduceItemC), coreOf(reduceItemD))
	assert.False(t, itemsEqual(reduceItemC, reduceItemD))
}
