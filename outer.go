package main

import "fmt"

// nextWord reads the next whitespace-delimited token, retrying past blank
// refills, and turning a drained input stack into NoInput rather than
// looping forever.
func (vm *VM) nextWord() (string, error) {
	for {
		tok, err := vm.Tok.Next()
		if err != nil {
			return "", err
		}
		if tok == "" {
			continue
		}
		if tok == eofToken {
			if err := vm.handleEof(); err != nil {
				return "", err
			}
			continue
		}
		return tok, nil
	}
}

// nextRawUntil reads literal text up to delim, bypassing tokenizing rules.
func (vm *VM) nextRawUntil(delim rune) (string, error) {
	return vm.Tok.ReadUntil(delim)
}

// handleEof runs when the tokenizer reports eofToken. Drained frames are
// already popped inside source.Stack, so this only asks Refill for one more
// frame once every frame has drained, or signals NoInput if no frame
// remains and nothing refills it.
func (vm *VM) handleEof() error {
	if vm.In.Depth() == 0 {
		if vm.Refill != nil {
			if r, ok := vm.Refill(); ok {
				return vm.In.Push(r)
			}
		}
		return NoInput
	}
	return nil
}

// Run drives the outer interpreter: token -> lookup -> (execute | compile
// | literal), with an error check after every token.
func (vm *VM) Run() error {
	vm.running = true
	for vm.running {
		vm.checkSignal()
		vm.drainTimerQueue()
		if err := vm.step1(); err != nil {
			if err := vm.catch(err); err != nil {
				vm.err = err // fatal: recorded for the caller's exit status
				return err
			}
		}
	}
	return nil
}

// Stop requests the outer loop exit after the current token finishes.
func (vm *VM) Stop() { vm.running = false }

func (vm *VM) step1() error {
	tok, err := vm.Tok.Next()
	if err != nil {
		return err
	}
	if tok == "" {
		return nil
	}
	if tok == eofToken {
		if err := vm.handleEof(); err != nil {
			if err == NoInput {
				vm.Stop()
				return nil
			}
			return err
		}
		return nil
	}
	return vm.dispatch(tok)
}

// dispatch implements the per-token core of the outer interpreter: lookup
// first; if found, either execute now (Immediate flag, or Interactive/
// Interpret/Immediate state) or compile (emit the xt) when Compiling;
// otherwise parse as a number literal, emitting (literal)+value when
// compiling or pushing it directly when interpreting.
func (vm *VM) dispatch(tok string) error {
	if xt, ok := vm.Dict.Lookup(tok); ok {
		entry, _ := vm.Dict.Entry(xt)
		if vm.State != Compiling || entry.Flag == Immediate {
			return vm.Execute(xt)
		}
		return vm.Arena.Comma(cellForXT(xt))
	}

	v, ok, err := parseNumber(tok, vm.Base)
	if err != nil {
		return err
	}
	if !ok {
		if rv, rok := parseRuneLiteral(tok); rok {
			v, ok = rv, true
		}
	}
	if !ok {
		return BadString
	}
	if vm.State == Compiling {
		if err := vm.Arena.Comma(cellForXT(literalXT(vm))); err != nil {
			return err
		}
		return vm.Arena.Comma(v)
	}
	return vm.Data.push(v)
}

func literalXT(vm *VM) int {
	xt, ok := vm.Dict.Lookup("(literal)")
	if !ok {
		panic("off: missing required primitive (literal)")
	}
	return xt
}

// catch is the per-token recovery boundary: on a nonzero error it reports
// the fault, dumps stacks, and performs a warm reset, unless the fault is
// fatal (NoInput: the input is exhausted), in which case it is
// returned for Run's caller to translate into a process exit code.
func (vm *VM) catch(err error) error {
	code := codeOf(err)
	if code == OK {
		return nil
	}

	vm.reportFault(err)

	if vm.isFatal(code) {
		vm.Stop()
		return err
	}

	vm.warmReset()
	return nil
}

func (vm *VM) reportFault(err error) {
	if fe, ok := err.(forthError); ok && fe.loc == "" {
		loc := vm.In.Scan.Location
		if vm.In.Scan.Len() == 0 {
			// the faulting token ended its line, which has already rolled
			// over into Last
			loc = vm.In.Last.Location
		}
		err = withLoc(fe, loc.String())
	}
	fmt.Fprintf(vm.Out, "\n? %v\n", err)
	vm.backtrace()
}

func (vm *VM) isFatal(code Code) bool {
	return code == NoInputCode
}

// backtrace dumps the data stack and the return stack before a warm reset.
// The return stack holds loop frames and `>r` values only; colon-call
// nesting is not recorded there, so no call chain is shown.
func (vm *VM) backtrace() {
	fmt.Fprintf(vm.Out, "data: %v\n", vm.Data.snapshot())
	fmt.Fprintf(vm.Out, "return: %v\n", vm.Return.snapshot())
}
