package arena

// Cells implements bounds-checked storage of 64-bit cells over one
// contiguous backing slice, addressed at cell granularity by Fetch/Store and
// at byte/half-cell granularity by ByteAt/SetByteAt/HalfAt/SetHalfAt. The
// slice grows to cover the highest address stored so far (capped at Limit,
// allocated up front to Limit on first touch when Limit is set), so a VM
// configured with a large Limit that a test never exercises doesn't pay for
// it, while still being one fixed-capacity region rather than a paged store.
type Cells struct {
	Core
	data []int64
}

// Size returns the length of the backing slice: 0 until the first Store.
func (m *Cells) Size() uint { return uint(len(m.data)) }

// Fetch returns the cell at addr. An address past the backing slice's
// current length reads back as zero. Returns a LimitError if addr is
// outside Limit.
func (m *Cells) Fetch(addr uint) (int64, error) {
	if err := m.checkLimit(addr, "fetch"); err != nil {
		return 0, err
	}
	if addr >= uint(len(m.data)) {
		return 0, nil
	}
	return m.data[addr], nil
}

// Store writes val at addr, growing the backing slice on first use to cover
// it (to Limit cells, when Limit is set, since that is the arena's whole
// fixed capacity anyway). Returns a LimitError if addr is outside Limit.
func (m *Cells) Store(addr uint, val int64) error {
	if err := m.checkLimit(addr, "store"); err != nil {
		return err
	}
	if need := addr + 1; need > uint(len(m.data)) {
		size := need
		if m.Limit > size {
			size = m.Limit
		}
		grown := make([]int64, size)
		copy(grown, m.data)
		m.data = grown
	}
	m.data[addr] = val
	return nil
}

// ByteAt returns byte i (little-endian) of the cell at addr/cellsize.
func (m *Cells) ByteAt(byteAddr uint, cellSize uint) (byte, error) {
	addr := byteAddr / cellSize
	shift := (byteAddr % cellSize) * 8
	v, err := m.Fetch(addr)
	if err != nil {
		return 0, err
	}
	return byte(v >> shift), nil
}

// SetByteAt writes byte b (little-endian) into the cell at byteAddr/cellSize,
// leaving the other bytes of that cell untouched.
func (m *Cells) SetByteAt(byteAddr uint, cellSize uint, b byte) error {
	addr := byteAddr / cellSize
	shift := (byteAddr % cellSize) * 8
	v, err := m.Fetch(addr)
	if err != nil {
		return err
	}
	mask := int64(0xff) << shift
	v = (v &^ mask) | (int64(b) << shift)
	return m.Store(addr, v)
}

// HalfAt returns the half-cell (16-bit) unit i of the cell at addr/(cellSize/2).
func (m *Cells) HalfAt(halfAddr uint, cellSize uint) (uint16, error) {
	halvesPerCell := cellSize / 2
	addr := halfAddr / halvesPerCell
	shift := (halfAddr % halvesPerCell) * 16
	v, err := m.Fetch(addr)
	if err != nil {
		return 0, err
	}
	return uint16(v >> shift), nil
}

// SetHalfAt writes half-cell value h into the cell at halfAddr/(cellSize/2),
// leaving the other half untouched.
func (m *Cells) SetHalfAt(halfAddr uint, cellSize uint, h uint16) error {
	halvesPerCell := cellSize / 2
	addr := halfAddr / halvesPerCell
	shift := (halfAddr % halvesPerCell) * 16
	v, err := m.Fetch(addr)
	if err != nil {
		return err
	}
	mask := int64(0xffff) << shift
	v = (v &^ mask) | (int64(h) << shift)
	return m.Store(addr, v)
}
