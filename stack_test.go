package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack_PushPopOrder(t *testing.T) {
	s := newStack("data", 4)
	require.NoError(t, s.push(1))
	require.NoError(t, s.push(2))
	require.NoError(t, s.push(3))

	v, err := s.pop()
	require.NoError(t, err)
	require.Equal(t, Cell(3), v)

	require.Equal(t, []Cell{1, 2}, s.snapshot())
}

func TestStack_Overflow(t *testing.T) {
	s := newStack("data", 2)
	require.NoError(t, s.push(1))
	require.NoError(t, s.push(2))
	err := s.push(3)
	require.Equal(t, StackOverflowCode, codeOf(err))
}

func TestStack_UnderflowOnEmptyPop(t *testing.T) {
	s := newStack("data", 4)
	_, err := s.pop()
	require.Equal(t, StackUnderflowCode, codeOf(err))
}

// The spec's open question on `pick` is resolved to the stricter rule:
// ix must be strictly less than depth, so reaching the bottom sentinel is
// a StackUnderflow rather than a silent wrong value.
func TestStack_PickStrictBound(t *testing.T) {
	s := newStack("data", 4)
	require.NoError(t, s.push(10))
	require.NoError(t, s.push(20))
	require.NoError(t, s.push(30))

	v, err := s.pick(0)
	require.NoError(t, err)
	require.Equal(t, Cell(30), v)

	v, err = s.pick(2)
	require.NoError(t, err)
	require.Equal(t, Cell(10), v)

	_, err = s.pick(3)
	require.Equal(t, StackUnderflowCode, codeOf(err), "pick at exactly depth must fail, not read the bottom sentinel")

	_, err = s.pick(-1)
	require.Equal(t, StackUnderflowCode, codeOf(err))
}

func TestStack_TopDoesNotPop(t *testing.T) {
	s := newStack("data", 4)
	require.NoError(t, s.push(7))
	v, err := s.top()
	require.NoError(t, err)
	require.Equal(t, Cell(7), v)
	require.Equal(t, 1, s.depth())
}

func TestStack_Reset(t *testing.T) {
	s := newStack("data", 4)
	require.NoError(t, s.push(1))
	require.NoError(t, s.push(2))
	s.reset()
	require.Equal(t, 0, s.depth())
	require.Empty(t, s.snapshot())
}
