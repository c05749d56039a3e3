package main

import (
	"github.com/offforth/off/internal/arena"
)

// Arena is the single fixed-capacity cell store shared by the dictionary
// (growing up from Here) and the string pool (growing down in bytes from
// the top of the region). The two halves must never cross.
type Arena struct {
	cells arena.Cells
	limit uint // capacity in cells

	here   Cell // first free dictionary cell
	strPtr uint // byte address of the lowest cached string (grows down)

	lowWater uint // strPtr value recorded at seal(), restored by cold reset
}

// NewArena constructs an Arena with the given capacity in cells.
func NewArena(limitCells uint) *Arena {
	a := &Arena{limit: limitCells}
	a.cells.Limit = limitCells
	a.strPtr = limitCells * uint(CellSize)
	a.lowWater = a.strPtr
	return a
}

// Here returns the first free dictionary cell address.
func (a *Arena) Here() Cell { return a.here }

// Freespace returns the number of free bytes between Here and the lowest
// cached string.
func (a *Arena) Freespace() uint {
	hereBytes := uint(a.here) * uint(CellSize)
	if hereBytes >= a.strPtr {
		return 0
	}
	return a.strPtr - hereBytes
}

// Fetch reads the cell at addr.
func (a *Arena) Fetch(addr Cell) (Cell, error) {
	v, err := a.cells.Fetch(uint(addr))
	if err != nil {
		return 0, NoSpace
	}
	return Cell(v), nil
}

// Store writes val at addr.
func (a *Arena) Store(addr, val Cell) error {
	if err := a.cells.Store(uint(addr), int64(val)); err != nil {
		return NoSpace
	}
	return nil
}

// Comma writes val at Here and advances Here by one cell. Fails with
// NoSpace if doing so would cross into the string region.
func (a *Arena) Comma(val Cell) error {
	if a.Freespace() < uint(CellSize) {
		return NoSpace
	}
	if err := a.Store(a.here, val); err != nil {
		return err
	}
	a.here++
	return nil
}

// ByteAt/SetByteAt expose byte-granular access for the `c@`/`c!` primitives.
func (a *Arena) ByteAt(byteAddr Cell) (byte, error) {
	b, err := a.cells.ByteAt(uint(byteAddr), uint(CellSize))
	if err != nil {
		return 0, NoSpace
	}
	return b, nil
}

func (a *Arena) SetByteAt(byteAddr Cell, b byte) error {
	if err := a.cells.SetByteAt(uint(byteAddr), uint(CellSize), b); err != nil {
		return NoSpace
	}
	return nil
}

// Cache copies s, including a trailing NUL, into the string pool, growing
// it downward, and returns the byte address of the first character.
func (a *Arena) Cache(s string) (Cell, error) {
	need := uint(len(s)) + 1
	if a.Freespace() < need {
		return 0, NoSpace
	}
	a.strPtr -= need
	base := a.strPtr
	for i := 0; i < len(s); i++ {
		if err := a.cells.SetByteAt(base+uint(i), uint(CellSize), s[i]); err != nil {
			return 0, NoSpace
		}
	}
	if err := a.cells.SetByteAt(base+uint(len(s)), uint(CellSize), 0); err != nil {
		return 0, NoSpace
	}
	return Cell(base), nil
}

// Uncache releases the most recently cached string if and only if addr is
// exactly the current string pointer — a strict LIFO discipline, chosen to
// resolve the ambiguity between matching at the string's base versus some
// offset into it.
func (a *Arena) Uncache(addr Cell) error {
	if uint(addr) != a.strPtr {
		return Unsave
	}
	n := a.StrLen(addr) + 1
	a.strPtr += uint(n)
	return nil
}

// StrLen returns the length (excluding the NUL) of the NUL-terminated
// string at addr.
func (a *Arena) StrLen(addr Cell) int {
	n := 0
	for {
		b, err := a.cells.ByteAt(uint(addr)+uint(n), uint(CellSize))
		if err != nil || b == 0 {
			return n
		}
		n++
	}
}

// String reads back the NUL-terminated string at addr.
func (a *Arena) String(addr Cell) string {
	n := a.StrLen(addr)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i], _ = a.cells.ByteAt(uint(addr)+uint(i), uint(CellSize))
	}
	return string(buf)
}

// Seal records the current string-pool floor as the restore point for a
// cold reset, done once by NewVM at startup.
func (a *Arena) Seal() { a.lowWater = a.strPtr }

// Forget truncates the dictionary back to addr and restores the string
// pool to its sealed low-water mark, undoing every user definition.
func (a *Arena) Forget(dictBase Cell) {
	a.here = dictBase
	a.strPtr = a.lowWater
}
