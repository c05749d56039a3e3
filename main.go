package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/offforth/off/internal/flushio"
	"github.com/offforth/off/internal/panicerr"
	"github.com/offforth/off/internal/source"
)

const banner = "off -- a small threaded-code forth\n"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defer glog.Flush()

	fs := flag.NewFlagSet("off", flag.ContinueOnError)
	var (
		includePath = fs.String("i", "", "read <path> as the first input source after startup")
		execWord    = fs.String("x", "", "execute <word> once after startup input")
		quiet       = fs.Bool("q", false, "suppress the startup banner")
		trace       = fs.Bool("t", false, "start with trace on")
		configPath  = fs.String("config", "", "TOML config file path")
		uiMode      = fs.Bool("ui", false, "launch the live inspector TUI instead of a REPL")
		teePath     = fs.String("tee", "", "additionally copy output to this file")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		glog.Errorf("loading config: %v", err)
		return 1
	}

	out := io.Writer(os.Stdout)
	wf := flushio.NewWriteFlusher(out)
	if *teePath != "" {
		f, err := os.Create(*teePath)
		if err != nil {
			glog.Errorf("opening -tee file: %v", err)
			return 1
		}
		defer f.Close()
		wf = flushio.WriteFlushers(wf, flushio.NewWriteFlusher(f))
	}
	counting := flushio.NewCountingWriteFlusher(wf)

	opts := append(cfg.ToOptions(),
		WithOutput(writerFunc(func(p []byte) (int, error) {
			n, err := counting.Write(p)
			if err == nil {
				err = counting.Flush()
			}
			return n, err
		})),
		WithTrace(*trace),
		WithTerminalName("<stdin>"),
	)
	vm := NewVM(opts...)

	if !*quiet {
		io.WriteString(counting, banner)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if !interactive {
		if err := vm.In.Push(namedReader{os.Stdin, "<stdin>"}); err != nil {
			glog.Errorf("pushing terminal input: %v", err)
			return 1
		}
	}

	if *includePath != "" {
		if err := pushIncludeFile(vm, *includePath); err != nil {
			glog.Errorf("opening -i file: %v", err)
			return 1
		}
	}

	stopSignals := vm.watchSignals()
	defer stopSignals()

	if *uiMode {
		if err := runInspector(vm); err != nil {
			glog.Errorf("inspector: %v", err)
			return 1
		}
	} else if interactive {
		if err := runWithReadline(vm); err != nil {
			glog.Errorf("repl: %v", err)
		}
	} else if err := panicerr.Recover("off", vm.Run); err != nil {
		glog.Errorf("run: %v", err)
	}

	if *execWord != "" {
		if xt, ok := vm.Dict.Lookup(*execWord); ok {
			if err := vm.Execute(xt); err != nil {
				glog.Errorf("-x %s: %v", *execWord, err)
			}
		} else {
			glog.Errorf("-x %s: word not defined", *execWord)
		}
	}

	counting.Flush()
	return int(vm.exitCode())
}

func (vm *VM) exitCode() Code {
	return codeOf(vm.err)
}

// runWithReadline drives the outer loop under panicerr.Recover so a bug in
// a primitive is reported as an error rather than crashing the process. It
// feeds the input-source stack one line at a time via vm.Refill, so line
// editing/history come from chzyer/readline instead of raw stdin, and wires
// `key` to a cbreak-mode read via golang.org/x/term.
func runWithReadline(vm *VM) error {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "bye",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	// The prompt itself is drawn by vm.prompt (via the tokenizer's prompt
	// hook) straight to vm.Out; readline's own prompt stays blank so the
	// two don't double up.
	rl.SetPrompt("")

	vm.Refill = func() (io.Reader, bool) {
		line, err := rl.Readline()
		if err != nil {
			return nil, false
		}
		return namedReader{strings.NewReader(line + "\n"), vm.termName}, true
	}

	vm.KeyReader = func() (rune, error) {
		old, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return 0, err
		}
		defer term.Restore(int(os.Stdin.Fd()), old)
		var b [1]byte
		if _, err := os.Stdin.Read(b[:]); err != nil {
			return 0, err
		}
		return rune(b[0]), nil
	}

	return panicerr.Recover("off", vm.Run)
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".off_history")
}

// pushIncludeFile opens name, trying OFF_PATH-prefixed retry on failure
// per the documented environment contract.
func pushIncludeFile(vm *VM, name string) error {
	f, err := openWithOffPath(name)
	if err != nil {
		return err
	}
	return vm.In.Push(namedReader{f, name})
}

func openWithOffPath(name string) (*os.File, error) {
	f, err := os.Open(name)
	if err == nil {
		return f, nil
	}
	if prefix := os.Getenv("OFF_PATH"); prefix != "" && !filepath.IsAbs(name) {
		alt := filepath.Join(prefix, name)
		if f2, err2 := os.Open(alt); err2 == nil {
			return f2, nil
		}
	}
	return nil, err
}

// wordInclude implements `"` / `include`: parse a filename token and push
// it as a new input frame, per the input-source stack's nested-include
// contract (capped at source.MaxDepth).
func wordInclude(vm *VM) error {
	name, err := vm.nextWord()
	if err != nil {
		return err
	}
	f, err := openWithOffPath(name)
	if err != nil {
		return NoFile
	}
	if err := vm.In.Push(namedReader{f, name}); err != nil {
		if err == source.ErrStackOverflow {
			return InputStackOverflow
		}
		return err
	}
	return nil
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func (nr namedReader) Close() error {
	if c, ok := nr.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
