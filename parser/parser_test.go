package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parsekit/rnglr/grammar"
	"github.com/parsekit/rnglr/lr"
	"github.com/parsekit/rnglr/lr/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parenLexer(g *grammar.Grammar) *lexer.Lexer {
	lx := lexer.New(g.Stop().Value)
	lx.Register(lexer.NewLiteralRecognizer(g.Symbol("(").Value, "("))
	lx.Register(lexer.NewLiteralRecognizer(g.Symbol(")").Value, ")"))
	return lx
}

func TestParserDeterministicAcceptsBalancedParens(t *testing.T) {
	b := grammar.NewBuilder("S")
	b.LHS("S").T("(", 0).N("S").T(")", 0).End()
	b.LHS("S").Epsilon()
	g, err := b.Build()
	require.NoError(t, err)

	def, err := lr.NewParserDefinition(g, lr.LRMode)
	require.NoError(t, err)

	p := NewParser(def, parenLexer(g), nil)
	out, err := p.Parse("(())")
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestParserDeterministicRejectsUnbalancedInput(t *testing.T) {
	b := grammar.NewBuilder("S")
	b.LHS("S").T("(", 0).N("S").T(")", 0).End()
	b.LHS("S").Epsilon()
	g, err := b.Build()
	require.NoError(t, err)

	def, err := lr.NewParserDefinition(g, lr.LRMode)
	require.NoError(t, err)

	p := NewParser(def, parenLexer(g), nil)
	_, err = p.Parse("(()")
	assert.Error(t, err)
}

func arithLexer(g *grammar.Grammar) *lexer.Lexer {
	lx := lexer.New(g.Stop().Value)
	lx.Register(lexer.NewLiteralRecognizer(g.Symbol("+").Value, "+"))
	num, err := lexer.NewRegexRecognizer(g.Symbol("num").Value, `[0-9]+`)
	if err != nil {
		panic(err)
	}
	lx.Register(num)
	return lx
}

func TestParserGLRProducesAmbiguousForest(t *testing.T) {
	b := grammar.NewBuilder("E")
	b.LHS("E").N("E").T("+", 1).N("E").End()
	b.LHS("E").T("num", 2).End()
	g, err := b.Build()
	require.NoError(t, err)

	def, err := lr.NewParserDefinition(g, lr.GLRMode)
	require.NoError(t, err)

	p := NewParser(def, arithLexer(g), nil)
	out, err := p.Parse("1+1+1")
	require.NoError(t, err)
	require.Len(t, out.Roots, 1)
	assert.EqualValues(t, 2, out.Forest.CountSolutions(out.Roots[0]))
}

func TestParserFileReportsFileNameOnParseError(t *testing.T) {
	b := grammar.NewBuilder("S")
	b.LHS("S").T("(", 0).N("S").T(")", 0).End()
	b.LHS("S").Epsilon()
	g, err := b.Build()
	require.NoError(t, err)

	def, err := lr.NewParserDefinition(g, lr.LRMode)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("(()"), 0o644))

	p := NewParser(def, parenLexer(g), nil)
	_, err = p.ParseFile(path)
	require.Error(t, err)
}
