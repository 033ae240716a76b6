package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAugmentsStart(t *testing.T) {
	b := NewBuilder("G")
	b.LHS("S").T("a", 1).End()
	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 0, g.Rule(0).Index)
	assert.Equal(t, "S'", g.Rule(0).LHS.Name)
	assert.Equal(t, "S", g.Rule(0).RHS[0].Name)
	assert.Equal(t, int32(0), g.Stop().Value)
}

func TestBuilderDenseIndices(t *testing.T) {
	b := NewBuilder("G")
	b.LHS("S").N("A").T("a", 0).End()
	b.LHS("A").T("b", 0).End()
	b.LHS("A").Epsilon()
	g, err := b.Build()
	require.NoError(t, err)

	seen := map[int32]bool{}
	g.EachTerminal(func(s *Symbol) {
		assert.False(t, seen[s.Value], "duplicate terminal index %d", s.Value)
		seen[s.Value] = true
	})
	assert.Equal(t, len(seen), g.TerminalCount())
}

func TestUndefinedNonTerminalRejected(t *testing.T) {
	b := NewBuilder("G")
	b.LHS("S").N("Ghost").End()
	_, err := b.Build()
	assert.Error(t, err)
}

func TestUnreachableNonTerminalRejected(t *testing.T) {
	b := NewBuilder("G")
	b.LHS("S").T("a", 0).End()
	b.LHS("Dead").T("b", 0).End()
	_, err := b.Build()
	assert.Error(t, err)
}

func TestEpsilonProduction(t *testing.T) {
	b := NewBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").Epsilon()
	g, err := b.Build()
	require.NoError(t, err)
	rules := g.RulesFor(g.Symbol("A"))
	require.Len(t, rules, 1)
	assert.True(t, rules[0].IsEpsilonProduction())
}
