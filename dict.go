package main

// Flag marks whether a dictionary entry executes during compilation
// (Immediate) or is treated as an ordinary word (Normal). Undefined marks
// a sentinel/placeholder entry that should never be looked up successfully.
type Flag int

const (
	Normal Flag = iota
	Immediate
	UndefinedFlag
)

// DictionaryEntry is the {cfa, name, flag, pfa} record. Name is a byte
// address into the Arena's string pool; PFA is a dictionary-arena address
// (meaning depends on CFA.Kind), or -1 for entries with no parameter field.
type DictionaryEntry struct {
	CFA  CodeField
	Name Cell // address of a NUL-terminated name in the Arena string pool
	Flag Flag
	PFA  Cell

	// DoesBody is meaningful only when CFA.Kind == KindDoes: the address
	// in the builder's own thread where the child's shared body begins,
	// captured at the moment `does>` ran.
	DoesBody Cell
}

// Dictionary holds the immutable primitive table plus the append-only,
// forget-truncatable array of user-defined entries, and performs
// newest-first/declaration-order lookup.
type Dictionary struct {
	arena *Arena
	user  []DictionaryEntry
}

// NewDictionary constructs an empty user dictionary bound to arena, which
// supplies name storage for cache/uncache.
func NewDictionary(arena *Arena) *Dictionary {
	return &Dictionary{arena: arena}
}

// Define appends a new user entry and returns its index, which doubles as
// a stable "execution token" (xt) for primitives like `'` / `execute`.
func (d *Dictionary) Define(entry DictionaryEntry) int {
	d.user = append(d.user, entry)
	return len(d.user) - 1
}

// Latest returns a pointer to the most recently defined user entry, or nil
// if none exists. The returned pointer is only valid until the next Define
// call, which may grow the backing slice.
func (d *Dictionary) Latest() *DictionaryEntry {
	if len(d.user) == 0 {
		return nil
	}
	return &d.user[len(d.user)-1]
}

// Entry resolves an execution token to its entry. Negative tokens index
// the primitive table instead (see xtOfPrimitive).
func (d *Dictionary) Entry(xt int) (DictionaryEntry, bool) {
	if xt < 0 {
		pid := -xt - 1
		if pid < 0 || pid >= len(primitiveTable) {
			return DictionaryEntry{}, false
		}
		p := primitiveTable[pid]
		// p.kind defaults to the zero value KindPrimitive for ordinary
		// words; branch/literal/do-family pseudo-words override it so the
		// inner interpreter's thread walker dispatches them specially
		// even though they are looked up like any other primitive.
		return DictionaryEntry{CFA: CodeField{Kind: p.kind, Primitive: pid}, Flag: p.flag, PFA: -1}, true
	}
	if xt < 0 || xt >= len(d.user) {
		return DictionaryEntry{}, false
	}
	return d.user[xt], true
}

// xtOfPrimitive converts a primitive table index into the negative xt
// namespace, kept disjoint from user entries (which are addressed 0..N-1).
func xtOfPrimitive(pid int) int { return -pid - 1 }

// Lookup searches user definitions newest-first, then primitives in
// declaration order, matching names byte-exact and length-sensitive.
// Returns the execution token and true, or false if name is undefined.
func (d *Dictionary) Lookup(name string) (int, bool) {
	for i := len(d.user) - 1; i >= 0; i-- {
		if d.arena.String(d.user[i].Name) == name {
			return i, true
		}
	}
	for pid, p := range primitiveTable {
		if p.name == name {
			return xtOfPrimitive(pid), true
		}
	}
	return 0, false
}

// Forget truncates the user dictionary back to the entry count recorded at
// mark, and restores the arena's string pool via Arena.Forget.
func (d *Dictionary) Forget(mark int, dictBase Cell) {
	d.user = d.user[:mark]
	d.arena.Forget(dictBase)
}

// Mark returns the current user-entry count, a restore point for `forget`.
func (d *Dictionary) Mark() int { return len(d.user) }

// nullCell is the inner-interpreter sentinel terminating every colon body.
const nullCell Cell = 0

// cellForXT encodes an execution token for storage in threaded code. User
// tokens (>= 0) are shifted by one so that 0 is free to mean "no entry";
// primitive tokens are already negative and need no shift.
func cellForXT(xt int) Cell {
	if xt >= 0 {
		return Cell(xt + 1)
	}
	return Cell(xt)
}

// xtFromCell decodes a cell written by cellForXT. ok is false for the null
// sentinel.
func xtFromCell(c Cell) (xt int, ok bool) {
	switch {
	case c == 0:
		return 0, false
	case c > 0:
		return int(c) - 1, true
	default:
		return int(c), true
	}
}
