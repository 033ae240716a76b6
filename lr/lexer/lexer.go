/*
Package lexer implements the lexer contract that the deterministic and
GLR runtimes drive: given the set of terminals the parser currently
expects, report the prefixes of the remaining input that match them.

Dispatch is expected-token-driven rather than a single combined DFA over
the whole grammar: the runtime already knows, from the current parser
state(s), which terminals could possibly come next, and only those
recognizers are tried. Every match is returned, longest first, so a
caller that wants a single token takes the first; matches of equal
length keep the order the expected terminals were given in, mirroring
yacc-style "earlier rule wins" tie-breaking.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package lexer

import (
	"errors"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer.P("pkg", "lexer")
}

// ErrNoMatch is returned when no recognizer among the expected terminals
// matches the input at the current position.
var ErrNoMatch = errors.New("lexer: no expected terminal matches input")

// Match is the result of a successful recognizer dispatch.
type Match struct {
	TokType int32
	Lexeme  string
	// Finished reports whether the winning recognizer considers its own
	// match maximal (true for every recognizer in this package; a
	// hand-rolled recognizer that extends its match incrementally could
	// report false while still searching).
	Finished bool
}

// Recognizer matches a single terminal against the start of a string.
type Recognizer interface {
	TokType() int32
	// Match reports the length of the longest prefix of input
	// recognized as this terminal, and whether that match is maximal.
	// A length of 0 means no match.
	Match(input string) (length int, finished bool)
}

// LiteralRecognizer matches a fixed string exactly.
type LiteralRecognizer struct {
	tokType int32
	text    string
}

// NewLiteralRecognizer creates a recognizer for an exact keyword or
// punctuation terminal.
func NewLiteralRecognizer(tokType int32, text string) *LiteralRecognizer {
	return &LiteralRecognizer{tokType: tokType, text: text}
}

// TokType implements Recognizer.
func (r *LiteralRecognizer) TokType() int32 { return r.tokType }

// Match implements Recognizer.
func (r *LiteralRecognizer) Match(input string) (int, bool) {
	if strings.HasPrefix(input, r.text) {
		return len(r.text), true
	}
	return 0, false
}

// RegexRecognizer matches a regular-expression terminal, backed by a
// lexmachine-compiled DFA for a single pattern.
type RegexRecognizer struct {
	tokType int32
	lexer   *lexmachine.Lexer
}

// NewRegexRecognizer compiles pattern (lexmachine/re2-flavored regex)
// into a recognizer for tokType.
func NewRegexRecognizer(tokType int32, pattern string) (*RegexRecognizer, error) {
	lx := lexmachine.NewLexer()
	lx.Add([]byte(pattern), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return m, nil
	})
	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return &RegexRecognizer{tokType: tokType, lexer: lx}, nil
}

// TokType implements Recognizer.
func (r *RegexRecognizer) TokType() int32 { return r.tokType }

// Match implements Recognizer. lexmachine scans forward for the first
// match anywhere in the byte slice; since the lexer contract only ever
// asks "does a match start right here", a match whose start column is
// not 0 is rejected.
func (r *RegexRecognizer) Match(input string) (int, bool) {
	scan, err := r.lexer.Scanner([]byte(input))
	if err != nil {
		return 0, false
	}
	tok, err, eof := scan.Next()
	if eof || err != nil {
		return 0, false
	}
	m, ok := tok.(*machines.Match)
	if !ok || m.TC != 0 {
		return 0, false
	}
	return len(m.Bytes), true
}

// Lexer dispatches among registered recognizers, one per terminal.
type Lexer struct {
	byTokType map[int32]Recognizer
	stopType  int32
}

// New creates an empty Lexer. stopType identifies the distinguished
// end-of-input terminal, returned once the input is exhausted.
func New(stopType int32) *Lexer {
	return &Lexer{byTokType: make(map[int32]Recognizer), stopType: stopType}
}

// Register adds a recognizer for its terminal. Registering twice for the
// same terminal replaces the previous recognizer.
func (l *Lexer) Register(r Recognizer) {
	l.byTokType[r.TokType()] = r
}

// Next scans input against the recognizers named in expected (in
// grammar-declaration order), returning every terminal that matches,
// longest match first; ties are broken by the order terminals appear in
// expected. A deterministic caller that only wants one token takes
// result[0]; the GLR runtime keeps the whole slice to fan out on
// lexical ambiguity. STOP is recognized implicitly once input is empty,
// regardless of expected.
//
// Scanning of the remaining expected terminals stops early once a
// recognizer reports finished with a match spanning all of input: no
// later recognizer could possibly match more of it than that.
func (l *Lexer) Next(input string, expected []int32) ([]Match, error) {
	if input == "" {
		return []Match{{TokType: l.stopType, Finished: true}}, nil
	}
	var matches []Match
	for _, tv := range expected {
		r, ok := l.byTokType[tv]
		if !ok {
			continue
		}
		length, finished := r.Match(input)
		if length == 0 {
			continue
		}
		matches = append(matches, Match{TokType: tv, Lexeme: input[:length], Finished: finished})
		if finished && length == len(input) {
			break
		}
	}
	if len(matches) == 0 {
		tracer().Debugf("no recognizer among %d expected terminals matched %q", len(expected), firstRunes(input, 12))
		return nil, ErrNoMatch
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].Lexeme) > len(matches[j].Lexeme)
	})
	return matches, nil
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
