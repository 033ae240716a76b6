/*
Package builder provides Semantic, a typed-value-stack semantic action
builder for the deterministic runtime. It implements lr.Builder, the
shift/reduce event contract a parser runtime drives. The package has no
SPPF-accumulating builder; a GLR parse gets its forest from lr/glr.

BSD License

Governed by a 3-Clause BSD license, see the root of this module.
*/
package builder

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/parsekit/rnglr"
	"github.com/parsekit/rnglr/grammar"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer.P("pkg", "builder")
}

// Action computes the semantic value of a reduced production from the
// values of its RHS symbols (terminals contribute their token's Value(),
// non-terminals contribute whatever a prior Action returned for them).
type Action func(prod *grammar.Production, rhs []interface{}) (interface{}, error)

// Semantic is a default builder driving typed semantic actions over a
// value stack, mirroring the shape of a classic yacc %union/$$ action
// table: Shift pushes a token's value, Reduce pops len(RHS) values, runs
// the registered Action (or passthrough for an unregistered production),
// and pushes the result.
type Semantic struct {
	actions map[int]Action // by production index
	stack   []interface{}
	result  interface{}
	err     error
}

// NewSemantic creates a Semantic builder. Register per-production
// actions with On; productions with no registered action default to
// "return the single child value", or nil for a production with any
// other RHS length.
func NewSemantic() *Semantic {
	return &Semantic{actions: make(map[int]Action)}
}

// On registers the semantic action for a production index.
func (s *Semantic) On(prodIndex int, action Action) *Semantic {
	s.actions[prodIndex] = action
	return s
}

// Shift implements lr.Builder.
func (s *Semantic) Shift(tok rnglr.Token) {
	s.stack = append(s.stack, tok.Value())
}

// Reduce implements lr.Builder.
func (s *Semantic) Reduce(prod *grammar.Production, popCount int) {
	if s.err != nil {
		return
	}
	if popCount > len(s.stack) {
		s.err = fmt.Errorf("builder: stack underflow reducing %s", prod)
		return
	}
	rhs := append([]interface{}(nil), s.stack[len(s.stack)-popCount:]...)
	s.stack = s.stack[:len(s.stack)-popCount]

	action, ok := s.actions[prod.Index]
	if !ok {
		action = passthrough
	}
	val, err := action(prod, rhs)
	if err != nil {
		s.err = fmt.Errorf("builder: action for %s: %w", prod, err)
		return
	}
	tracer().Debugf("reduced %s -> %v", prod, val)
	s.stack = append(s.stack, val)
}

// Accept implements lr.Builder.
func (s *Semantic) Accept() {
	if s.err != nil {
		return
	}
	if len(s.stack) != 1 {
		s.err = fmt.Errorf("builder: expected exactly 1 value on accept, have %d", len(s.stack))
		return
	}
	s.result = s.stack[0]
}

// Result returns the accepted parse's semantic value, or the first
// error encountered while building it.
func (s *Semantic) Result() (interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func passthrough(prod *grammar.Production, rhs []interface{}) (interface{}, error) {
	if len(rhs) == 1 {
		return rhs[0], nil
	}
	return nil, nil
}
