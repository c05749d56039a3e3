package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// dumpWord is a flattened, serialization-friendly view of one dictionary
// entry, used by both the human-readable and YAML dumps.
type dumpWord struct {
	Index int    `yaml:"index"`
	Name  string `yaml:"name"`
	CFA   string `yaml:"cfa"`
	Flag  string `yaml:"flag"`
	PFA   Cell   `yaml:"pfa"`
}

func (f Flag) String() string {
	switch f {
	case Normal:
		return "normal"
	case Immediate:
		return "immediate"
	default:
		return "undefined"
	}
}

func (vm *VM) dumpWords() []dumpWord {
	words := make([]dumpWord, 0, vm.Dict.Mark())
	for i := 0; i < vm.Dict.Mark(); i++ {
		e, ok := vm.Dict.Entry(i)
		if !ok {
			continue
		}
		words = append(words, dumpWord{
			Index: i,
			Name:  vm.Arena.String(e.Name),
			CFA:   e.CFA.String(),
			Flag:  e.Flag.String(),
			PFA:   e.PFA,
		})
	}
	return words
}

// See implements the human-readable `see` dump of one word, in the
// teacher-derived plain-text report style: a name, its cfa kind, and (for
// colon-defined words) the raw cell sequence of its body up to the null
// sentinel.
func (vm *VM) See(w io.Writer, name string) error {
	xt, ok := vm.Dict.Lookup(name)
	if !ok {
		return NoWord
	}
	entry, _ := vm.Dict.Entry(xt)
	fmt.Fprintf(w, "%s %s pfa=%d\n", name, entry.CFA, entry.PFA)
	if entry.CFA.Kind != KindColon {
		return nil
	}
	for addr := entry.PFA; ; addr++ {
		cell, err := vm.Arena.Fetch(addr)
		if err != nil {
			return err
		}
		xt, ok := xtFromCell(cell)
		if !ok {
			fmt.Fprintf(w, "  %d: ;\n", addr)
			return nil
		}
		child, ok := vm.Dict.Entry(xt)
		label := "?"
		if ok {
			label = child.CFA.String()
		}
		fmt.Fprintf(w, "  %d: %s\n", addr, label)
		switch {
		case ok && (child.CFA.Kind == KindLiteral || child.CFA.Kind == KindBranch || child.CFA.Kind == KindQBranch):
			addr++
			v, err := vm.Arena.Fetch(addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %d:   %d\n", addr, v)
		}
	}
}

// DumpYAML writes a structured snapshot of the dictionary and stacks,
// handy for `-ui`-less scripted inspection of a running session.
func (vm *VM) DumpYAML(w io.Writer) error {
	snapshot := struct {
		Base   int        `yaml:"base"`
		State  string     `yaml:"state"`
		Here   Cell       `yaml:"here"`
		Data   []Cell     `yaml:"data_stack"`
		Return []Cell     `yaml:"return_stack"`
		User   []Cell     `yaml:"user_stack"`
		Words  []dumpWord `yaml:"words"`
	}{
		Base:   vm.Base,
		State:  vm.State.String(),
		Here:   vm.Arena.Here(),
		Data:   vm.Data.snapshot(),
		Return: vm.Return.snapshot(),
		User:   vm.User.snapshot(),
		Words:  vm.dumpWords(),
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(snapshot)
}
