package main

// wordComma implements `,`: write the data-stack top at Here and advance.
func wordComma(vm *VM) error {
	v, err := vm.Data.pop()
	if err != nil {
		return err
	}
	return vm.Arena.Comma(v)
}

// wordCreate implements `create`: parse the next token, cache its name,
// and append a new user entry defaulting to KindPushPfa (a plain variable
// shape) with pfa set to the current Here.
func wordCreate(vm *VM) error {
	name, err := vm.nextWord()
	if err != nil {
		return err
	}
	return vm.create(name)
}

// create is the shared body of wordCreate and the colon compiler, since
// `:` is create-plus-colon-cfa-plus-enter-compiling.
func (vm *VM) create(name string) error {
	nameAddr, err := vm.Arena.Cache(name)
	if err != nil {
		return err
	}
	vm.Dict.Define(DictionaryEntry{
		CFA:  CodeField{Kind: KindPushPfa},
		Name: nameAddr,
		Flag: Normal,
		PFA:  vm.Arena.Here(),
	})
	return nil
}

// wordColon implements `:`: create the word, retarget its cfa to Colon,
// and enter Compiling state.
func wordColon(vm *VM) error {
	name, err := vm.nextWord()
	if err != nil {
		return err
	}
	if err := vm.create(name); err != nil {
		return err
	}
	vm.Dict.Latest().CFA = CodeField{Kind: KindColon}
	vm.State = Compiling
	return nil
}

// wordSemicolon implements `;`: emit the null sentinel closing the current
// definition and return to Interactive state. Flagged Immediate so it runs
// during compilation rather than being compiled into the body.
func wordSemicolon(vm *VM) error {
	if err := vm.Arena.Comma(nullCell); err != nil {
		return err
	}
	vm.State = Interactive
	return nil
}

// wordVariable implements `variable`: a plain create (cfa stays PushPfa)
// with one zeroed cell reserved for the value.
func wordVariable(vm *VM) error {
	name, err := vm.nextWord()
	if err != nil {
		return err
	}
	if err := vm.create(name); err != nil {
		return err
	}
	return vm.Arena.Comma(0)
}

// wordConstant implements `constant`: pops a value, creates a word whose
// cfa is Constant, storing the value at its pfa.
func wordConstant(vm *VM) error {
	val, err := vm.Data.pop()
	if err != nil {
		return err
	}
	name, err := vm.nextWord()
	if err != nil {
		return err
	}
	if err := vm.create(name); err != nil {
		return err
	}
	vm.Dict.Latest().CFA = CodeField{Kind: KindConstant}
	return vm.Arena.Comma(val)
}

// wordDoesGT implements `does>`. It is an ordinary (non-immediate)
// primitive, compiled into the builder's own thread just like any other
// word. Its run-time action, reached only while the builder itself is
// executing (e.g. `42 const forty-two`), is: retarget the word most
// recently created within this run (by the builder's own `create`) so
// that invoking it later pushes its pfa and continues into whatever
// follows does> in the builder's thread — then stop walking the builder's
// own thread immediately, since that remainder belongs to the child, not
// to this run of the builder.
func wordDoesGT(vm *VM) error {
	latest := vm.Dict.Latest()
	if latest == nil {
		return BadState
	}
	latest.CFA = CodeField{Kind: KindDoes}
	latest.DoesBody = vm.ip
	return errDoesExit
}
