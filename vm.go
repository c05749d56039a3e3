package main

import (
	"io"
	"sync"

	"github.com/offforth/off/internal/logio"
	"github.com/offforth/off/internal/source"
)

// State selects interpret vs. compile behavior in the outer loop. `[`
// switches to Interpret to escape into interpretation mid-compile and `]`
// switches back to Compiling; no word enters ImmediateState.
type State int

const (
	Interactive State = iota
	Compiling
	Interpret
	ImmediateState
)

func (s State) String() string {
	switch s {
	case Interactive:
		return "interactive"
	case Compiling:
		return "compiling"
	case Interpret:
		return "interpret"
	case ImmediateState:
		return "immediate"
	default:
		return "?"
	}
}

// VM owns every piece of process-global state the design calls for: the
// three stacks, the shared arena, the dictionary, the input-source stack,
// and the scalar registers (Base, Trace, State, error slot).
type VM struct {
	Data   stack
	Return stack
	User   stack

	Arena *Arena
	Dict  *Dictionary
	In    *source.Stack
	Tok   *Tokenizer

	Out io.Writer
	Log *logio.Logger

	Base  int
	Trace bool
	State State

	err    error
	errLoc string

	ip      Cell // instruction pointer: index of the next cell to execute
	running bool

	dictBase Cell // Here at cold-start, the forget floor
	termName string

	pendingSignal Code // set by an async handler, consumed at the next catch boundary

	// leaveFlag, when true, forces the next (loop)/(+loop) check to report
	// "exit", implementing `leave`.
	leaveFlag bool

	// KeyReader backs the `key` primitive, reading one rune in cbreak mode
	// from the terminal. Left nil in non-interactive/test VMs, where `key`
	// throws NoInput.
	KeyReader func() (rune, error)

	// Refill is consulted when the input-source stack drains completely
	// (Depth() == 0 past the active frame). A line-editing REPL uses this
	// to hand the outer loop one fresh line at a time instead of handing
	// the whole terminal to the input stack up front; returning ok == false
	// ends the session with NoInput, same as an unset Refill.
	Refill func() (r io.Reader, ok bool)

	// pic is the pictured-numeric-output builder's scratch buffer, used by
	// <# # #s hold sign #>.
	pic picBuilder

	sync.Mutex // guards timerQueue, touched from the timer goroutine
	timerQueue []string
}

// Options configures a VM at construction time via the functional-options
// pattern.
type Option func(*vmConfig)

type vmConfig struct {
	dataDepth, returnDepth, userDepth int
	arenaCells                        uint
	base                              int
	out                               io.Writer
	trace                             bool
	termName                          string
}

func defaultConfig() vmConfig {
	return vmConfig{
		dataDepth:   64,
		returnDepth: 64,
		userDepth:   64,
		arenaCells:  16 * 1024,
		base:        10,
		termName:    "<stdin>",
	}
}

// WithStackDepths overrides the default depth of all three stacks.
func WithStackDepths(data, ret, user int) Option {
	return func(c *vmConfig) { c.dataDepth, c.returnDepth, c.userDepth = data, ret, user }
}

// WithArenaSize overrides the default dictionary/string arena capacity, in
// cells.
func WithArenaSize(cells uint) Option {
	return func(c *vmConfig) { c.arenaCells = cells }
}

// WithBase overrides the default numeric base (10).
func WithBase(base int) Option {
	return func(c *vmConfig) { c.base = base }
}

// WithOutput sets the writer primitives like `.`/`type`/`emit` write to.
func WithOutput(w io.Writer) Option {
	return func(c *vmConfig) { c.out = w }
}

// WithTrace starts the VM with Trace already enabled (the `-t` CLI flag).
func WithTrace(on bool) Option {
	return func(c *vmConfig) { c.trace = on }
}

// WithTerminalName sets the name reported for the terminal input frame.
func WithTerminalName(name string) Option {
	return func(c *vmConfig) { c.termName = name }
}

// NewVM constructs a VM and seals the arena's low-water mark so a later
// cold reset restores exactly to this point. Primitive names stay in the
// Go primitive table; none are cached in the string arena.
func NewVM(opts ...Option) *VM {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.out == nil {
		cfg.out = io.Discard
	}

	vm := &VM{
		Data:     newStack("data", cfg.dataDepth),
		Return:   newStack("return", cfg.returnDepth),
		User:     newStack("user", cfg.userDepth),
		Arena:    NewArena(cfg.arenaCells),
		Out:      cfg.out,
		Base:     cfg.base,
		Trace:    cfg.trace,
		termName: cfg.termName,
		In:       &source.Stack{},
	}
	vm.Dict = NewDictionary(vm.Arena)
	vm.Tok = NewTokenizer(vm.In, func(name string) bool { return name == vm.termName }, vm.prompt)
	vm.Log = &logio.Logger{}
	vm.Log.SetOutput(nopWriteCloser{vm.Out})

	vm.dictBase = vm.Arena.Here()
	vm.Arena.Seal()

	return vm
}

func (vm *VM) prompt() {
	if vm.State == Interactive {
		io.WriteString(vm.Out, "ok> ")
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
