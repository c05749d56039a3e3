package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// runInspector drives the `-ui` live debugger: a tview layout of the
// dictionary, the three stacks, and a scrolling fault/trace feed, refreshed
// on a timer while the interpreter runs against the terminal in the
// background. Closing the UI (q or Ctrl-C) stops the interpreter.
func runInspector(vm *VM) error {
	app := tview.NewApplication()

	stacks := tview.NewTextView().SetDynamicColors(true)
	stacks.SetBorder(true).SetTitle(" stacks ")

	dict := tview.NewTextView().SetDynamicColors(true)
	dict.SetBorder(true).SetTitle(" dictionary ")

	feed := tview.NewTextView().SetDynamicColors(true).SetChangedFunc(func() { app.Draw() })
	feed.SetBorder(true).SetTitle(" output ")
	vm.Out = feed

	layout := tview.NewFlex().
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(stacks, 0, 1, false).
			AddItem(dict, 0, 2, false), 0, 1, false).
		AddItem(feed, 0, 2, false)

	layout.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			vm.Stop()
			app.Stop()
			return nil
		}
		return ev
	})

	refresh := time.NewTicker(200 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-refresh.C:
				app.QueueUpdateDraw(func() {
					fmt.Fprint(stacks, inspectorStacksView(vm))
					fmt.Fprint(dict, inspectorDictView(vm))
				})
			case <-done:
				refresh.Stop()
				return
			}
		}
	}()

	go func() {
		vm.Run()
		close(done)
		app.Stop()
	}()

	return app.SetRoot(layout, true).SetFocus(layout).Run()
}

func inspectorStacksView(vm *VM) string {
	var b strings.Builder
	fmt.Fprintf(&b, "base:   %d\n", vm.Base)
	fmt.Fprintf(&b, "state:  %s\n", vm.State)
	fmt.Fprintf(&b, "here:   %d\n", vm.Arena.Here())
	fmt.Fprintf(&b, "data:   %v\n", vm.Data.snapshot())
	fmt.Fprintf(&b, "return: %v\n", vm.Return.snapshot())
	fmt.Fprintf(&b, "user:   %v\n", vm.User.snapshot())
	return b.String()
}

func inspectorDictView(vm *VM) string {
	var b strings.Builder
	words := vm.dumpWords()
	start := 0
	if len(words) > 40 {
		start = len(words) - 40
	}
	for _, w := range words[start:] {
		fmt.Fprintf(&b, "%4d %-16s %-10s %s\n", w.Index, w.Name, w.Flag, w.CFA)
	}
	return b.String()
}
