package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode_String(t *testing.T) {
	require.Equal(t, "StackUnderflow", StackUnderflowCode.String())
	require.Equal(t, "OK", OK.String())
}

func TestCodeOf_NonForthErrorIsUndefined(t *testing.T) {
	require.Equal(t, UndefinedCode, codeOf(errors.New("not a forth error")))
}

func TestCodeOf_Nil(t *testing.T) {
	require.Equal(t, OK, codeOf(nil))
}

func TestForthError_MessageIncludesLocationAndDetail(t *testing.T) {
	err := badLiteral("line1", "12g", 'g')
	require.Equal(t, BadLiteralCode, codeOf(err))
	require.Contains(t, err.Error(), "line1")
	require.Contains(t, err.Error(), "12g")
}

func TestWithLoc_DoesNotMutateSentinel(t *testing.T) {
	original := StackOverflow
	_ = withLoc(StackOverflow, "somewhere")
	require.Equal(t, original, StackOverflow, "sentinel must stay reusable for comparison")
}
