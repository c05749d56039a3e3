package main

import (
	"strings"
	"testing"

	"github.com/offforth/off/internal/source"
	"github.com/stretchr/testify/require"
)

func newTokenizerOn(t *testing.T, src string) *Tokenizer {
	t.Helper()
	var in source.Stack
	require.NoError(t, in.Push(namedReader{strings.NewReader(src), "<test>"}))
	return NewTokenizer(&in, nil, nil)
}

func TestTokenizer_SplitsOnWhitespace(t *testing.T) {
	tz := newTokenizerOn(t, "  2   3 +  . ")
	var got []string
	for {
		tok, err := tz.Next()
		require.NoError(t, err)
		if tok == eofToken {
			break
		}
		if tok == "" {
			continue
		}
		got = append(got, tok)
	}
	require.Equal(t, []string{"2", "3", "+", "."}, got)
}

func TestTokenizer_BackslashCommentRunsToEOL(t *testing.T) {
	tz := newTokenizerOn(t, "abc \\ this is ignored\ndef")
	tok, err := tz.Next()
	require.NoError(t, err)
	require.Equal(t, "abc", tok)

	tok, err = tz.Next()
	require.NoError(t, err)
	require.Equal(t, "def", tok)
}

// A backslash in the middle of a token (not at token start) is ordinary
// text, not a comment opener.
func TestTokenizer_BackslashMidTokenIsLiteral(t *testing.T) {
	tz := newTokenizerOn(t, `a\b `)
	tok, err := tz.Next()
	require.NoError(t, err)
	require.Equal(t, `a\b`, tok)
}

func TestTokenizer_EofWithPendingTokenReturnsItFirst(t *testing.T) {
	tz := newTokenizerOn(t, "tail")
	tok, err := tz.Next()
	require.NoError(t, err)
	require.Equal(t, "tail", tok)

	tok, err = tz.Next()
	require.NoError(t, err)
	require.Equal(t, eofToken, tok)
}

func TestTokenizer_EofOnPureWhitespaceReturnsEofDirectly(t *testing.T) {
	tz := newTokenizerOn(t, "   ")
	tok, err := tz.Next()
	require.NoError(t, err)
	require.Equal(t, eofToken, tok)
}

func TestTokenizer_ReadUntilStopsAtDelimiterExcludingIt(t *testing.T) {
	tz := newTokenizerOn(t, "hello world) rest")
	s, err := tz.ReadUntil(')')
	require.NoError(t, err)
	require.Equal(t, "hello world", s)

	tok, err := tz.Next()
	require.NoError(t, err)
	require.Equal(t, "rest", tok)
}

func TestTokenizer_ReadUntilHitsEofGracefully(t *testing.T) {
	tz := newTokenizerOn(t, "no closing delim here")
	s, err := tz.ReadUntil(')')
	require.NoError(t, err)
	require.Equal(t, "no closing delim here", s)
}
