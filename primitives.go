package main

import (
	"fmt"

	"github.com/offforth/off/internal/runeio"
)

// primitive is one row of the statically initialized, immutable-at-runtime
// primitive table. kind lets a handful of pseudo-words (branch, ?branch,
// (literal), the do-family) be looked up and compiled exactly like any
// other word while being dispatched specially by the inner interpreter's
// thread walker instead of through fn.
type primitive struct {
	name string
	flag Flag
	kind CodeFieldKind
	fn   func(vm *VM) error
}

// primitiveTable is terminated implicitly by the slice's own length; no
// sentinel entry is needed since Go slices carry their length.
var primitiveTable = buildPrimitiveTable()

func buildPrimitiveTable() []primitive {
	return []primitive{
		// --- stack manipulation ---
		{name: "dup", fn: wordDup},
		{name: "drop", fn: wordDrop},
		{name: "swap", fn: wordSwap},
		{name: "over", fn: wordOver},
		{name: "rot", fn: wordRot},
		{name: "pick", fn: wordPick},
		{name: "depth", fn: wordDepth},
		{name: ">r", fn: wordToR},
		{name: "r>", fn: wordRFrom},
		{name: "r@", fn: wordRFetch},
		{name: ">u", fn: wordToU},
		{name: "u>", fn: wordUFrom},

		// --- arithmetic / logic ---
		{name: "+", fn: wordAdd},
		{name: "-", fn: wordSub},
		{name: "*", fn: wordMul},
		{name: "/", fn: wordDiv},
		{name: "mod", fn: wordMod},
		{name: "negate", fn: wordNegate},
		{name: "abs", fn: wordAbs},
		{name: "and", fn: wordAnd},
		{name: "or", fn: wordOr},
		{name: "xor", fn: wordXor},
		{name: "invert", fn: wordInvert},
		{name: "lshift", fn: wordLshift},
		{name: "rshift", fn: wordRshift},
		{name: "=", fn: wordEq},
		{name: "<", fn: wordLt},
		{name: ">", fn: wordGt},
		{name: "0=", fn: wordZeroEq},
		{name: "0<", fn: wordZeroLt},

		// --- memory ---
		{name: "@", fn: wordFetch},
		{name: "!", fn: wordStore},
		{name: "c@", fn: wordCFetch},
		{name: "c!", fn: wordCStore},
		{name: "here", fn: wordHere},
		{name: ",", fn: wordComma},
		{name: "allot", fn: wordAllot},

		// --- dictionary / compiler ---
		{name: "create", fn: wordCreate},
		{name: ":", fn: wordColon},
		{name: ";", flag: Immediate, fn: wordSemicolon},
		{name: "does>", fn: wordDoesGT},
		{name: "constant", fn: wordConstant},
		{name: "variable", fn: wordVariable},
		{name: "forget", fn: wordForget},
		{name: "'", fn: wordTick},
		{name: "execute", fn: wordExecute},
		{name: "immediate", fn: wordImmediate},
		{name: "[", flag: Immediate, fn: wordLBracket},
		{name: "]", fn: wordRBracket},

		// --- control-flow pseudo-words (compiled like any other word, but
		// dispatched by the thread walker via kind, never via fn) ---
		{name: "branch", kind: KindBranch},
		{name: "?branch", kind: KindQBranch},
		{name: "(literal)", kind: KindLiteral},
		{name: "(do)", kind: KindDoInit},
		{name: "(loop)", kind: KindDoLoop},
		{name: "(+loop)", kind: KindDoPLoop},

		// --- control-flow words (Immediate: run now, during compilation;
		// leave, i and j are ordinary run-time words) ---
		{name: "if", flag: Immediate, fn: wordIf},
		{name: "else", flag: Immediate, fn: wordElse},
		{name: "then", flag: Immediate, fn: wordThen},
		{name: "begin", flag: Immediate, fn: wordBegin},
		{name: "again", flag: Immediate, fn: wordAgain},
		{name: "until", flag: Immediate, fn: wordUntil},
		{name: "while", flag: Immediate, fn: wordWhile},
		{name: "repeat", flag: Immediate, fn: wordRepeat},
		{name: "do", flag: Immediate, fn: wordDo},
		{name: "loop", flag: Immediate, fn: wordLoop},
		{name: "+loop", flag: Immediate, fn: wordPlusLoop},
		{name: "leave", fn: wordLeave},
		{name: "i", fn: wordI},
		{name: "j", fn: wordJ},

		// --- error handling ---
		{name: "throw", fn: wordThrow},
		{name: "catch", fn: wordCatch},

		// --- formatted / pictured numeric I/O ---
		{name: ".", fn: wordDot},
		{name: "emit", fn: wordEmit},
		{name: "type", fn: wordType},
		{name: "<#", fn: wordPictureBegin},
		{name: "#", fn: wordPictureDigit},
		{name: "#s", fn: wordPictureDigits},
		{name: "hold", fn: wordPictureHold},
		{name: "sign", fn: wordPictureSign},
		{name: "#>", fn: wordPictureEnd},
		{name: "key", fn: wordKey},
		{name: ".(", flag: Immediate, fn: wordDotParen},

		// --- base / trace ---
		{name: "hex", fn: wordHex},
		{name: "decimal", fn: wordDecimal},
		{name: "base", fn: wordBaseVar},
		{name: "trace", fn: wordTrace},

		// --- misc / system ---
		{name: "bye", fn: wordQuit},
		{name: "include", fn: wordInclude},
		{name: "\"", fn: wordInclude},
		{name: "see", fn: wordSee},
		{name: "dump", fn: wordDump},
	}
}

// wordSee implements `see`: disassemble the next named word to Out.
func wordSee(vm *VM) error {
	name, err := vm.nextWord()
	if err != nil {
		return err
	}
	return vm.See(vm.Out, name)
}

// wordDump implements `dump`: write a full YAML snapshot of VM state to
// Out, for off-line inspection without the `-ui` inspector.
func wordDump(vm *VM) error {
	return vm.DumpYAML(vm.Out)
}

func wordDup(vm *VM) error {
	v, err := vm.Data.top()
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordDrop(vm *VM) error {
	_, err := vm.Data.pop()
	return err
}

func wordSwap(vm *VM) error {
	b, err := vm.Data.pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.pop()
	if err != nil {
		return err
	}
	if err := vm.Data.push(b); err != nil {
		return err
	}
	return vm.Data.push(a)
}

func wordOver(vm *VM) error {
	v, err := vm.Data.pick(1)
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordRot(vm *VM) error {
	c, err := vm.Data.pop()
	if err != nil {
		return err
	}
	b, err := vm.Data.pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.pop()
	if err != nil {
		return err
	}
	if err := vm.Data.push(b); err != nil {
		return err
	}
	if err := vm.Data.push(c); err != nil {
		return err
	}
	return vm.Data.push(a)
}

func wordPick(vm *VM) error {
	ix, err := vm.Data.pop()
	if err != nil {
		return err
	}
	v, err := vm.Data.pick(int(ix))
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordDepth(vm *VM) error {
	return vm.Data.push(Cell(vm.Data.depth()))
}

func wordToR(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Return.push(v)
}

func wordRFrom(vm *VM) error {
	v, err := vm.Return.pop()
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordRFetch(vm *VM) error {
	v, err := vm.Return.top()
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

// wordToU and wordUFrom move between the data and user stacks, kept
// entirely separate from >r/r> so the return stack discipline used by
// (colon)/(do) is never perturbed by user code.
func wordToU(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.User.push(v)
}

func wordUFrom(vm *VM) error {
	v, err := vm.User.pop()
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func binOp(vm *VM, f func(a, b Cell) (Cell, error)) error {
	b, err := vm.Data.pop()
	if err != nil {
		return err
	}
	a, err := vm.Data.pop()
	if err != nil {
		return err
	}
	v, err := f(a, b)
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordAdd(vm *VM) error { return binOp(vm, func(a, b Cell) (Cell, error) { return a + b, nil }) }
func wordSub(vm *VM) error { return binOp(vm, func(a, b Cell) (Cell, error) { return a - b, nil }) }
func wordMul(vm *VM) error { return binOp(vm, func(a, b Cell) (Cell, error) { return a * b, nil }) }

func wordDiv(vm *VM) error {
	return binOp(vm, func(a, b Cell) (Cell, error) {
		if b == 0 {
			return 0, DivByZero
		}
		return a / b, nil
	})
}

func wordMod(vm *VM) error {
	return binOp(vm, func(a, b Cell) (Cell, error) {
		if b == 0 {
			return 0, DivByZero
		}
		return a % b, nil
	})
}

func wordNegate(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Data.push(-v)
}

func wordAbs(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	if v < 0 {
		v = -v
	}
	return vm.Data.push(v)
}

func wordAnd(vm *VM) error { return binOp(vm, func(a, b Cell) (Cell, error) { return a & b, nil }) }
func wordOr(vm *VM) error  { return binOp(vm, func(a, b Cell) (Cell, error) { return a | b, nil }) }
func wordXor(vm *VM) error { return binOp(vm, func(a, b Cell) (Cell, error) { return a ^ b, nil }) }

func wordInvert(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Data.push(^v)
}

func wordLshift(vm *VM) error {
	return binOp(vm, func(a, b Cell) (Cell, error) { return a << uint(b), nil })
}

func wordRshift(vm *VM) error {
	return binOp(vm, func(a, b Cell) (Cell, error) { return a >> uint(b), nil })
}

func boolCell(b bool) Cell {
	if b {
		return -1 // all-bits-set true, the conventional Forth flag
	}
	return 0
}

func wordEq(vm *VM) error {
	return binOp(vm, func(a, b Cell) (Cell, error) { return boolCell(a == b), nil })
}

func wordLt(vm *VM) error {
	return binOp(vm, func(a, b Cell) (Cell, error) { return boolCell(a < b), nil })
}

func wordGt(vm *VM) error {
	return binOp(vm, func(a, b Cell) (Cell, error) { return boolCell(a > b), nil })
}

func wordZeroEq(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Data.push(boolCell(v == 0))
}

func wordZeroLt(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Data.push(boolCell(v < 0))
}

func wordFetch(vm *VM) error {
	addr, err := vm.Data.pop()
	if err != nil {
		return err
	}
	v, err := vm.Arena.Fetch(addr)
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordStore(vm *VM) error {
	addr, err := vm.Data.pop()
	if err != nil {
		return err
	}
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Arena.Store(addr, v)
}

func wordCFetch(vm *VM) error {
	addr, err := vm.Data.pop()
	if err != nil {
		return err
	}
	b, err := vm.Arena.ByteAt(addr)
	if err != nil {
		return err
	}
	return vm.Data.push(Cell(b))
}

func wordCStore(vm *VM) error {
	addr, err := vm.Data.pop()
	if err != nil {
		return err
	}
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Arena.SetByteAt(addr, byte(v))
}

func wordHere(vm *VM) error { return vm.Data.push(vm.Arena.Here()) }

func wordAllot(vm *VM) error {
	n, err := vm.Data.pop()
	if err != nil {
		return err
	}
	for i := Cell(0); i < n; i++ {
		if err := vm.Arena.Comma(0); err != nil {
			return err
		}
	}
	return nil
}

func wordTick(vm *VM) error {
	name, err := vm.nextWord()
	if err != nil {
		return err
	}
	xt, ok := vm.Dict.Lookup(name)
	if !ok {
		return NoWord
	}
	return vm.Data.push(cellForXT(xt))
}

func wordExecute(vm *VM) error {
	xtCell, err := vm.Data.pop()
	if err != nil {
		return err
	}
	xt, ok := xtFromCell(xtCell)
	if !ok {
		return NullPointer
	}
	return vm.Execute(xt)
}

func wordImmediate(vm *VM) error {
	latest := vm.Dict.Latest()
	if latest == nil {
		return BadState
	}
	latest.Flag = Immediate
	return nil
}

func wordLBracket(vm *VM) error {
	vm.State = Interpret
	return nil
}

func wordRBracket(vm *VM) error {
	vm.State = Compiling
	return nil
}

func wordI(vm *VM) error {
	v, err := vm.loopIndex(0)
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordJ(vm *VM) error {
	v, err := vm.loopIndex(1)
	if err != nil {
		return err
	}
	return vm.Data.push(v)
}

func wordDot(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	fmt.Fprintf(vm.Out, "%s ", formatCell(v, vm.Base))
	return nil
}

// wordEmit implements `emit`: writes one character to Out through
// runeio.WriteANSIRune, the same ANSI-safe single-rune path the teacher's
// Core.writeRune uses, so C1 controls display in their classic 7-bit form
// instead of being re-encoded as raw UTF-8.
func wordEmit(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	_, err = runeio.WriteANSIRune(vm.Out, rune(v))
	return err
}

// wordType implements `type`: writes addr/n raw bytes to Out unchanged, the
// same way the original's type() calls outp(OUTPUT, str, str_length(str))
// (original_source/src/OneFileForth.c:2549-2556). Bytes are read straight
// from the arena and written verbatim — never routed through a rune
// conversion, which would corrupt any stored byte >= 0x80 into a multi-byte
// UTF-8 sequence.
func wordType(vm *VM) error {
	n, err := vm.Data.pop()
	if err != nil {
		return err
	}
	addr, err := vm.Data.pop()
	if err != nil {
		return err
	}
	buf := make([]byte, n)
	for i := Cell(0); i < n; i++ {
		b, err := vm.Arena.ByteAt(addr + i)
		if err != nil {
			return err
		}
		buf[i] = b
	}
	_, err = vm.Out.Write(buf)
	return err
}

func wordKey(vm *VM) error {
	if vm.KeyReader == nil {
		return NoInput
	}
	r, err := vm.KeyReader()
	if err != nil {
		return NoInput
	}
	return vm.Data.push(Cell(r))
}

// wordDotParen implements `.(`: echo everything up to the next `)` to
// output, immediately, used for inline banners inside definitions.
func wordDotParen(vm *VM) error {
	text, err := vm.nextRawUntil(')')
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(vm.Out, text)
	return err
}

func wordHex(vm *VM) error {
	vm.Base = 16
	return nil
}

func wordDecimal(vm *VM) error {
	vm.Base = 10
	return nil
}

func wordBaseVar(vm *VM) error { return vm.Data.push(Cell(vm.Base)) }

func wordTrace(vm *VM) error {
	vm.Trace = !vm.Trace
	return nil
}
