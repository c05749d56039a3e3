//go:build !cellwidth32 && !cellwidth16

package main

// Cell is the uniform machine word: every stack item, address, dictionary
// pointer, and compiled instruction is a Cell. The whole interpreter is
// parameterized by cell width; this file selects the default (64-bit) width.
// Build with -tags cellwidth32 or -tags cellwidth16 to select a narrower
// cell for a more constrained target.
type Cell = int64

// CellBits is the width of a Cell in bits.
const CellBits = 64

// CellSize is the width of a Cell in bytes.
const CellSize = CellBits / 8
