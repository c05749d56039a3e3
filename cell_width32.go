//go:build cellwidth32

package main

// Cell is the uniform machine word, selected here as 32 bits for hosts or
// embedded targets where a 64-bit cell wastes too much arena space.
type Cell = int32

// CellBits is the width of a Cell in bits.
const CellBits = 32

// CellSize is the width of a Cell in bytes.
const CellSize = CellBits / 8
