package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stopType int32 = 0

func TestLiteralMatch(t *testing.T) {
	l := New(stopType)
	l.Register(NewLiteralRecognizer(1, "+"))
	ms, err := l.Next("+2", []int32{1})
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, int32(1), ms[0].TokType)
	assert.Equal(t, "+", ms[0].Lexeme)
}

func TestRegexMatchesLongestPrefix(t *testing.T) {
	l := New(stopType)
	num, err := NewRegexRecognizer(2, `[0-9]+`)
	require.NoError(t, err)
	l.Register(num)
	ms, err := l.Next("123abc", []int32{2})
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "123", ms[0].Lexeme)
}

func TestLongestMatchWinsAcrossRecognizers(t *testing.T) {
	l := New(stopType)
	l.Register(NewLiteralRecognizer(1, "="))
	eq2, err := NewRegexRecognizer(2, `==`)
	require.NoError(t, err)
	l.Register(eq2)
	ms, err := l.Next("==", []int32{1, 2})
	require.NoError(t, err)
	require.NotEmpty(t, ms)
	assert.Equal(t, int32(2), ms[0].TokType)
	assert.Equal(t, "==", ms[0].Lexeme)
}

func TestNoMatchAmongExpected(t *testing.T) {
	l := New(stopType)
	l.Register(NewLiteralRecognizer(1, "+"))
	_, err := l.Next("*", []int32{1})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestStopAtEndOfInput(t *testing.T) {
	l := New(stopType)
	ms, err := l.Next("", []int32{1, 2})
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, stopType, ms[0].TokType)
}

// TestAmbiguousLexReturnsEveryMatchInPriorityOrder exercises the
// expected-token-driven fan-out the GLR runtime relies on: two
// recognizers both match the same prefix, and both must come back,
// longest first. The input continues past "if" so that the keyword's
// match does not span the whole input, which would end the scan early.
func TestAmbiguousLexReturnsEveryMatchInPriorityOrder(t *testing.T) {
	l := New(stopType)
	keyword := NewLiteralRecognizer(1, "if")
	l.Register(keyword)
	ident, err := NewRegexRecognizer(2, `[a-z]+`)
	require.NoError(t, err)
	l.Register(ident)

	ms, err := l.Next("if x", []int32{1, 2})
	require.NoError(t, err)
	require.Len(t, ms, 2)
	for _, m := range ms {
		assert.Equal(t, "if", m.Lexeme)
	}
}

// TestLongerMatchSortsBeforeShorterAmbiguousMatch confirms priority
// ordering actually sorts by match length, not just declaration order.
func TestLongerMatchSortsBeforeShorterAmbiguousMatch(t *testing.T) {
	l := New(stopType)
	short := NewLiteralRecognizer(1, "=")
	l.Register(short)
	long, err := NewRegexRecognizer(2, `==`)
	require.NoError(t, err)
	l.Register(long)

	ms, err := l.Next("==", []int32{1, 2})
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "==", ms[0].Lexeme)
	assert.Equal(t, "=", ms[1].Lexeme)
}
