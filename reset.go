package main

// warmReset clears all three stacks, resets Base and State, and leaves the
// user dictionary and input sources untouched, then lets Run's loop simply
// continue (the outer loop itself is the "reentry point").
func (vm *VM) warmReset() {
	vm.Data.reset()
	vm.Return.reset()
	vm.User.reset()
	vm.Base = 10
	vm.State = Interactive
	vm.leaveFlag = false
}

// coldReset performs a warm reset plus forget: every user-defined word is
// discarded and the string arena restored to its sealed low-water mark.
func (vm *VM) coldReset() {
	vm.warmReset()
	vm.Dict.Forget(0, vm.dictBase)
	vm.Base = 10
}

// wordForget implements `forget`: drop every user-defined word (there is
// no per-word granularity in this design; the whole user dictionary is
// append-only and truncated en masse, matching "destroyed as mass" in the
// lifecycle rules).
func wordForget(vm *VM) error {
	vm.Dict.Forget(0, vm.dictBase)
	return nil
}

// wordQuit implements `bye`: stop the outer loop cleanly.
func wordQuit(vm *VM) error {
	vm.Stop()
	return nil
}

// wordThrow implements `throw`: pop a code and return it as a Go error for
// catch to process at the next recovery boundary.
func wordThrow(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	if v == 0 {
		return nil
	}
	return throwErr(Code(v), "throw", "")
}

// wordCatch implements `catch`: execute the xt on top of the data stack,
// trapping any error it raises and pushing its numeric code instead of
// letting it propagate to the outer per-token boundary.
func wordCatch(vm *VM) error {
	xtCell, err := vm.Data.pop()
	if err != nil {
		return err
	}
	xt, ok := xtFromCell(xtCell)
	if !ok {
		return NullPointer
	}

	dataMark := vm.Data.depth()
	retMark := vm.Return.depth()

	runErr := vm.Execute(xt)
	if runErr != nil {
		vm.Data.items = vm.Data.items[:dataMark]
		vm.Return.items = vm.Return.items[:retMark]
		return vm.Data.push(Cell(codeOf(runErr)))
	}
	return vm.Data.push(0)
}
