package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArena_CommaAdvancesHere(t *testing.T) {
	a := NewArena(64)
	base := a.Here()
	require.NoError(t, a.Comma(42))
	require.Equal(t, base+1, a.Here())

	v, err := a.Fetch(base)
	require.NoError(t, err)
	require.Equal(t, Cell(42), v)
}

func TestArena_StringCacheAndUncacheLIFO(t *testing.T) {
	a := NewArena(64)

	addr1, err := a.Cache("hello")
	require.NoError(t, err)
	require.Equal(t, "hello", a.String(addr1))

	addr2, err := a.Cache("world")
	require.NoError(t, err)
	require.Equal(t, "world", a.String(addr2))

	// addr1 is not the most recent entry (addr2 is, since the pool grows
	// downward and addr2 < addr1), so uncaching it must fail.
	require.Equal(t, UnsaveCode, codeOf(a.Uncache(addr1)))

	require.NoError(t, a.Uncache(addr2))
	// addr1 remains readable after the newer entry is released.
	require.Equal(t, "hello", a.String(addr1))
}

func TestArena_DictionaryAndStringNeverCross(t *testing.T) {
	// A tiny one-cell arena: only CellSize bytes of free space exist at
	// all, so caching a string longer than that must fail with NoSpace.
	a := NewArena(1)
	_, err := a.Cache("abcdefghij")
	require.Equal(t, NoSpaceCode, codeOf(err))

	// A string that just fits should succeed, and further Comma calls that
	// would collide with it must fail with NoSpace rather than corrupt it.
	a2 := NewArena(2)
	addr, err := a2.Cache("ab") // 3 bytes incl. NUL
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		if err := a2.Comma(1); err != nil {
			require.Equal(t, NoSpaceCode, codeOf(err))
			break
		}
	}
	require.Equal(t, "ab", a2.String(addr), "comma must never overwrite cached string bytes")
}

func TestArena_SealAndForgetRestoreLowWater(t *testing.T) {
	a := NewArena(64)
	dictBase := a.Here()
	_, err := a.Cache("builtin")
	require.NoError(t, err)
	a.Seal()

	_, err = a.Cache("userword")
	require.NoError(t, err)
	require.NoError(t, a.Comma(99))

	a.Forget(dictBase)
	require.Equal(t, dictBase, a.Here())
	require.Equal(t, "builtin", a.String(Cell(a.strPtr)))
}

func TestArena_ByteAccessors(t *testing.T) {
	a := NewArena(64)
	require.NoError(t, a.Comma(0))
	require.NoError(t, a.SetByteAt(0, 0xAB))
	b, err := a.ByteAt(0)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b)
}
