//go:build cellwidth16

package main

// Cell is the uniform machine word, selected here as 16 bits for the
// smallest bare-metal targets, where every cell spent on interpreter
// bookkeeping is a cell the user dictionary doesn't get.
type Cell = int16

// CellBits is the width of a Cell in bits.
const CellBits = 16

// CellSize is the width of a Cell in bytes.
const CellSize = CellBits / 8
