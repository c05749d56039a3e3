package main

import "errors"

// errDoesExit is a control-flow-only signal, never surfaced as a forth
// error code: it tells walk to stop immediately because the remainder of
// the current thread belongs to a child word captured by does>, not to
// the definition currently executing.
var errDoesExit = errors.New("does> exit")

// Execute consumes an execution token and runs it to completion: a
// primitive calls straight through; a colon-defined word walks its thread
// from pfa until it reads back the null sentinel. The instruction pointer
// is a local of walk, not a return-stack entry.
func (vm *VM) Execute(xt int) error {
	entry, ok := vm.Dict.Entry(xt)
	if !ok {
		return NoWord
	}
	vm.traceStep(xt, entry)
	return vm.run(entry)
}

// traceStep logs the word about to run when Trace is on, backed by the
// teacher's internal/logio.Logger rather than a bare fmt.Printf, matching
// spec §4.8/§9's "trace" facility.
func (vm *VM) traceStep(xt int, entry DictionaryEntry) {
	if !vm.Trace {
		return
	}
	vm.Log.Printf("trace", "%s", vm.entryName(xt, entry))
}

// entryName resolves an execution token back to a printable word name, for
// traceStep: primitive names live in the static
// primitive table, user-word names live in the arena's string pool.
func (vm *VM) entryName(xt int, entry DictionaryEntry) string {
	if xt < 0 {
		if pid := -xt - 1; pid >= 0 && pid < len(primitiveTable) {
			return primitiveTable[pid].name
		}
		return "?"
	}
	return vm.Arena.String(entry.Name)
}

// run dispatches a single dictionary entry by its CodeField kind.
func (vm *VM) run(entry DictionaryEntry) error {
	switch entry.CFA.Kind {
	case KindPrimitive:
		p := primitiveTable[entry.CFA.Primitive]
		return p.fn(vm)

	case KindColon:
		return vm.walk(entry.PFA)

	case KindPushPfa, KindVariable:
		return vm.Data.push(entry.PFA)

	case KindPushPfaFetch, KindConstant:
		v, err := vm.Arena.Fetch(entry.PFA)
		if err != nil {
			return err
		}
		return vm.Data.push(v)

	case KindDoes:
		if err := vm.Data.push(entry.PFA); err != nil {
			return err
		}
		return vm.walk(entry.DoesBody)

	default:
		// Literal/Branch/QBranch/DoInit/DoLoop/DoPLoop only ever appear
		// embedded in a colon thread, never as a standalone dictionary
		// entry's cfa, so reaching here from Execute is a corrupt program.
		return UnResolved
	}
}

// walk interprets the threaded code starting at pfa, a sequence of cells
// terminated by the null sentinel, each cell being an encoded execution
// token, a literal value (following a Literal token), or a branch target
// (following Branch/QBranch/do-family tokens).
func (vm *VM) walk(pfa Cell) error {
	ip := pfa
	for {
		cell, err := vm.Arena.Fetch(ip)
		if err != nil {
			return err
		}
		xt, ok := xtFromCell(cell)
		if !ok {
			return nil // null sentinel: this definition is done
		}
		ip++

		entry, ok := vm.Dict.Entry(xt)
		if !ok {
			return NoWord
		}

		var next Cell
		next, err = vm.step(xt, entry, ip)
		if err == errDoesExit {
			return nil
		}
		if err != nil {
			return err
		}
		ip = next
	}
}

// step executes one in-thread token and returns the instruction pointer to
// resume at. For plain words this is just ip unchanged; Literal/Branch/
// QBranch/do-family tokens consume the following cell(s) as data.
func (vm *VM) step(xt int, entry DictionaryEntry, ip Cell) (Cell, error) {
	switch entry.CFA.Kind {
	case KindLiteral:
		v, err := vm.Arena.Fetch(ip)
		if err != nil {
			return 0, err
		}
		if err := vm.Data.push(v); err != nil {
			return 0, err
		}
		return ip + 1, nil

	case KindBranch:
		target, err := vm.Arena.Fetch(ip)
		if err != nil {
			return 0, err
		}
		if target == unresolvedCell {
			return 0, UnResolved
		}
		return target, nil

	case KindQBranch:
		target, err := vm.Arena.Fetch(ip)
		if err != nil {
			return 0, err
		}
		cond, err := vm.Data.pop()
		if err != nil {
			return 0, err
		}
		if cond == 0 && target == unresolvedCell {
			return 0, UnResolved
		}
		if cond == 0 {
			return target, nil
		}
		return ip + 1, nil

	case KindDoInit:
		return vm.doInit(ip)

	case KindDoLoop:
		return ip, vm.doLoop(1)

	case KindDoPLoop:
		step, err := vm.Data.pop()
		if err != nil {
			return 0, err
		}
		return ip, vm.doLoop(step)

	default:
		// Ordinary word (primitive, colon, variable/constant/pushPfa,
		// does>-built): just run it, instruction pointer advances past the
		// single xt cell already consumed by walk. vm.ip is published
		// first so a does> primitive mid-thread can capture it as the
		// child word's shared body start.
		vm.ip = ip
		vm.traceStep(xt, entry)
		if err := vm.run(entry); err != nil {
			return 0, err
		}
		return ip, nil
	}
}

// doInit implements (do): the return stack frame, top to bottom, is
// {index, limit, continuation}, matching how loopIndex/doLoop address it.
func (vm *VM) doInit(ip Cell) (Cell, error) {
	index, err := vm.Data.pop()
	if err != nil {
		return 0, err
	}
	limit, err := vm.Data.pop()
	if err != nil {
		return 0, err
	}
	if err := vm.Return.push(ip); err != nil {
		return 0, err
	}
	if err := vm.Return.push(limit); err != nil {
		return 0, err
	}
	if err := vm.Return.push(index); err != nil {
		return 0, err
	}
	return ip, nil
}

// loopIndex returns the innermost active loop's index, for the `i` and `j`
// primitives. depth selects which nested loop: 0 = innermost.
func (vm *VM) loopIndex(depth int) (Cell, error) {
	return vm.Return.pick(depth * 3)
}

// doLoop implements the (loop)/(+loop) half of a do-loop: pop the loop
// frame, advance index by step, and push a 0/1 continuation flag onto the
// data stack for the ?branch that immediately follows in the thread to
// consume. 0 means "not done, branch back"; 1 means "done, fall through".
// If the frame is kept (not done), it is pushed back so `i`/`j` keep
// working and the next (loop) sees it again.
func (vm *VM) doLoop(step Cell) error {
	index, err := vm.Return.pop()
	if err != nil {
		return err
	}
	limit, err := vm.Return.pop()
	if err != nil {
		return err
	}
	cont, err := vm.Return.pop()
	if err != nil {
		return err
	}

	index += step
	done := vm.leaveFlag || loopDone(index, limit, step)
	vm.leaveFlag = false

	if !done {
		if err := vm.Return.push(cont); err != nil {
			return err
		}
		if err := vm.Return.push(limit); err != nil {
			return err
		}
		if err := vm.Return.push(index); err != nil {
			return err
		}
	}

	var flag Cell
	if done {
		flag = 1
	}
	return vm.Data.push(flag)
}

// loopDone reports whether index has crossed limit, honoring the sign of
// step so a negative +loop step counts down correctly.
func loopDone(index, limit, step Cell) bool {
	if step >= 0 {
		return index >= limit
	}
	return index < limit
}
