package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarErrorMessageIncludesContext(t *testing.T) {
	err := NewGrammarError("Arith", "FIRST(E) is empty").WithSymbol("E").WithState(3)
	msg := err.Error()
	assert.Contains(t, msg, "Arith")
	assert.Contains(t, msg, "E")
	assert.Contains(t, msg, "state 3")
}

func TestGrammarErrorWithoutStateOmitsStateText(t *testing.T) {
	err := NewGrammarError("Arith", "no productions declared")
	assert.NotContains(t, err.Error(), "state")
}

func TestParseErrorReportsPositionAndExpected(t *testing.T) {
	err := &ParseError{Pos: 7, Got: "}", Expected: []string{"id", "("}}
	msg := err.Error()
	assert.Contains(t, msg, "position 7")
	assert.Contains(t, msg, "unexpected }")
	assert.Contains(t, msg, "id")
}

func TestParseErrorUsesFileNameWhenSet(t *testing.T) {
	err := &ParseError{Pos: 2, FileName: "input.g", Got: "x"}
	assert.Contains(t, err.Error(), "input.g:2")
}

func TestParseErrorDefaultsGotToEndOfInput(t *testing.T) {
	err := &ParseError{Pos: 0}
	assert.Contains(t, err.Error(), "end of input")
}

func TestParseErrorWrapsLongExpectedList(t *testing.T) {
	long := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		long = append(long, "terminal_with_a_long_name")
	}
	err := &ParseError{Pos: 1, Expected: long}
	msg := err.Error()
	assert.True(t, strings.Contains(msg, "\n"), "expected wrapped output to contain a newline")
}

func TestInvariantPanics(t *testing.T) {
	assert.PanicsWithValue(t, "rnglr: internal invariant violated: pop of empty stack", func() {
		Invariant("pop of empty stack")
	})
}
