package arena_test

import (
	"testing"

	"github.com/offforth/off/internal/arena"
	"github.com/stretchr/testify/require"
)

func TestCells_StoreFetchRoundTrip(t *testing.T) {
	var c arena.Cells
	c.Limit = 1024
	require.NoError(t, c.Store(5, 42))
	v, err := c.Fetch(5)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestCells_UnallocatedReadsAsZero(t *testing.T) {
	var c arena.Cells
	c.Limit = 1024
	v, err := c.Fetch(900)
	require.NoError(t, err)
	require.Equal(t, int64(0), v)
}

func TestCells_LimitEnforced(t *testing.T) {
	var c arena.Cells
	c.Limit = 8
	_, err := c.Fetch(8)
	require.Error(t, err)
	require.IsType(t, arena.LimitError{}, err)

	err = c.Store(100, 1)
	require.Error(t, err)
}

func TestCells_StoreNonAdjacentAddresses(t *testing.T) {
	var c arena.Cells
	c.Limit = 64
	require.NoError(t, c.Store(2, 100))
	require.NoError(t, c.Store(6, 200))

	v, err := c.Fetch(2)
	require.NoError(t, err)
	require.Equal(t, int64(100), v)

	v, err = c.Fetch(6)
	require.NoError(t, err)
	require.Equal(t, int64(200), v)

	// an address between the two, never explicitly stored, reads back as
	// zero rather than whatever stray bytes live there.
	v, err = c.Fetch(4)
	require.NoError(t, err)
	require.Equal(t, int64(0), v)
}

func TestCells_ByteAtLittleEndian(t *testing.T) {
	var c arena.Cells
	c.Limit = 64
	require.NoError(t, c.Store(0, 0x0102030405060708))

	b0, err := c.ByteAt(0, 8)
	require.NoError(t, err)
	require.Equal(t, byte(0x08), b0)

	b7, err := c.ByteAt(7, 8)
	require.NoError(t, err)
	require.Equal(t, byte(0x01), b7)
}

func TestCells_SetByteAtPreservesSiblingBytes(t *testing.T) {
	var c arena.Cells
	c.Limit = 64
	require.NoError(t, c.Store(0, 0))
	require.NoError(t, c.SetByteAt(0, 8, 0xAB))
	require.NoError(t, c.SetByteAt(1, 8, 0xCD))

	v, err := c.Fetch(0)
	require.NoError(t, err)
	require.Equal(t, int64(0xCDAB), v)
}

func TestCells_Size(t *testing.T) {
	var c arena.Cells
	c.Limit = 256
	require.Equal(t, uint(0), c.Size())
	require.NoError(t, c.Store(3, 1))
	require.Greater(t, c.Size(), uint(0))
}
