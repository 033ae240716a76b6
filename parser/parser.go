/*
Package parser assembles the top-level Parser facade: a grammar's
ParserDefinition, a Lexer, and (for LR-mode definitions) a semantic
Builder, wired together to offer the three runtime entry points of the
external interface (§6): Parse, ParseWithContext and ParseFile.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package parser

import (
	"os"

	"github.com/parsekit/rnglr"
	"github.com/parsekit/rnglr/errors"
	"github.com/parsekit/rnglr/grammar"
	"github.com/parsekit/rnglr/lr"
	"github.com/parsekit/rnglr/lr/builder"
	"github.com/parsekit/rnglr/lr/glr"
	"github.com/parsekit/rnglr/lr/lexer"
	"github.com/parsekit/rnglr/lr/sppf"
)

// Output is what a Parser entry point returns. For an LR-mode
// definition, Value carries whatever the semantic Builder produced; for
// a GLR-mode definition, Forest and Roots carry the Shared Packed Parse
// Forest the RNGLR runtime built.
type Output struct {
	Value  interface{}
	Forest *sppf.Forest
	Roots  []*sppf.SymbolNode
}

// Context lets ParseWithContext resume a deterministic parse from a
// state a host already reached, instead of always starting at state 0.
// It only seeds the parse stack; no Layout sub-parse uses it.
type Context struct {
	State int
}

// Parser ties a grammar's ParserDefinition to a Lexer and, for LR-mode
// definitions, a semantic Builder factory, exposing the three runtime
// entry points of the external interface: Parse, ParseWithContext and
// ParseFile.
type Parser struct {
	def  *lr.ParserDefinition
	lx   *lexer.Lexer
	newB func() lr.Builder // nil selects a default builder.Semantic
}

// NewParser creates a Parser for def, dispatching recognizers through
// lx. newBuilder is invoked once per LR-mode Parse call to produce a
// fresh semantic Builder; pass nil for a default builder.Semantic with
// passthrough actions (every reduction returns its single child's value
// unchanged, or nil for any other RHS length).
func NewParser(def *lr.ParserDefinition, lx *lexer.Lexer, newBuilder func() lr.Builder) *Parser {
	return &Parser{def: def, lx: lx, newB: newBuilder}
}

// Parse parses input in full, starting at position 0 / state 0.
func (p *Parser) Parse(input string) (*Output, error) {
	return p.ParseWithContext(&Context{}, input)
}

// ParseWithContext parses input, seeding the deterministic runtime's
// stack at ctx.State instead of state 0. GLR-mode definitions ignore
// ctx, since a GLR parse always explores every frontier from its own
// start state.
func (p *Parser) ParseWithContext(ctx *Context, input string) (*Output, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	if p.def.Mode == lr.GLRMode {
		return p.parseGLR(input)
	}
	return p.parseLR(ctx, input)
}

// ParseFile reads path and parses its contents, stamping the file name
// onto any resulting *errors.ParseError.
func (p *Parser) ParseFile(path string) (*Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := p.Parse(string(data))
	if pe, ok := err.(*errors.ParseError); ok {
		pe.FileName = path
	}
	return out, err
}

func (p *Parser) parseLR(ctx *Context, input string) (*Output, error) {
	rt := lr.NewRuntime(p.def.Table)
	scan := &detScanner{lx: p.lx, g: p.def.Grammar, input: input}

	var b lr.Builder
	var sem *builder.Semantic
	if p.newB != nil {
		b = p.newB()
	} else {
		sem = builder.NewSemantic()
		b = sem
	}

	if err := rt.ParseFrom(ctx.State, scan, b); err != nil {
		return nil, err
	}
	out := &Output{}
	if sem != nil {
		val, err := sem.Result()
		if err != nil {
			return nil, err
		}
		out.Value = val
	}
	return out, nil
}

func (p *Parser) parseGLR(input string) (*Output, error) {
	gp := glr.NewParser(p.def.Table)
	scan := &glrScanner{lx: p.lx, g: p.def.Grammar, input: input}
	res, err := gp.Parse(scan)
	if err != nil {
		return nil, err
	}
	return &Output{Forest: res.Forest, Roots: res.Roots}, nil
}

// lexedToken adapts a lexer.Match into an rnglr.Token.
type lexedToken struct {
	tt   int32
	lex  string
	span rnglr.Span
}

func (t lexedToken) TokType() rnglr.TokType { return rnglr.TokType(t.tt) }
func (t lexedToken) Lexeme() string         { return t.lex }
func (t lexedToken) Value() interface{}     { return t.lex }
func (t lexedToken) Span() rnglr.Span       { return t.span }

// detScanner drives lr/lexer for the deterministic runtime. Since
// lr.Scanner.NextToken carries no notion of "current parser state", it
// offers every terminal in the grammar as expected rather than the
// state-specific set the Lexer Contract otherwise supports. When two
// recognizers match at the same position, the top-ranked match is taken
// even if the current parser state has no action for its terminal; the
// GLR-mode scanner below filters by the expected set instead.
type detScanner struct {
	lx    *lexer.Lexer
	g     *grammar.Grammar
	input string
	pos   uint64
}

func (s *detScanner) NextToken() (rnglr.Token, error) {
	rest := s.input[s.pos:]
	var all []int32
	s.g.EachTerminal(func(term *grammar.Symbol) { all = append(all, term.Value) })
	ms, err := s.lx.Next(rest, all)
	if err != nil {
		return nil, err
	}
	m := ms[0] // single-stack runtime always takes the highest-priority match
	span := rnglr.Span{s.pos, s.pos + uint64(len(m.Lexeme))}
	s.pos += uint64(len(m.Lexeme))
	return lexedToken{tt: m.TokType, lex: m.Lexeme, span: span}, nil
}

// glrScanner drives lr/lexer for the GLR runtime, honoring the
// per-position expected set the GLR driver computes from its current
// frontier, the Lexer Contract's expected-token-driven dispatch as
// specified. Unlike the deterministic runtime, it returns every matching
// terminal rather than just the highest-priority one, so a lexical
// ambiguity (two recognizers both matching at this position) fans the
// GLR frontier out into parallel shifts instead of silently picking one.
type glrScanner struct {
	lx    *lexer.Lexer
	g     *grammar.Grammar
	input string
}

func (s *glrScanner) Lex(pos uint64, expected []*grammar.Symbol) ([]rnglr.Token, error) {
	if pos >= uint64(len(s.input)) {
		return nil, nil
	}
	rest := s.input[pos:]
	expectedVals := make([]int32, len(expected))
	for i, term := range expected {
		expectedVals[i] = term.Value
	}
	ms, err := s.lx.Next(rest, expectedVals)
	if err == lexer.ErrNoMatch {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	toks := make([]rnglr.Token, len(ms))
	for i, m := range ms {
		span := rnglr.Span{pos, pos + uint64(len(m.Lexeme))}
		toks[i] = lexedToken{tt: m.TokType, lex: m.Lexeme, span: span}
	}
	return toks, nil
}
