package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// watchSignals wires SIGINT to a warm-reset request and SIGTERM/SIGQUIT to
// a hard stop, matching the asynchronous-interruption rules: the handler
// itself only records intent (via pendingSignal/Stop), actual handling
// happens at the next catch() boundary between tokens.
func (vm *VM) watchSignals() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case sig := <-ch:
				switch sig {
				case os.Interrupt:
					vm.pendingSignal = CaughtSignalCode
				default:
					vm.Stop()
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

// checkSignal is polled by the outer loop between tokens: a pending
// asynchronous SIGINT becomes a warm reset request, consumed once.
func (vm *VM) checkSignal() {
	if vm.pendingSignal == CaughtSignalCode {
		vm.pendingSignal = OK
		vm.warmReset()
	}
}

// startTimer optionally invokes the named word at each tick, enqueuing its
// execution at the next safe point rather than running it directly from
// the timer goroutine, since the interpreter's state is not safe for
// concurrent access.
func (vm *VM) startTimer(interval time.Duration, word string) (stop func()) {
	if interval <= 0 || word == "" {
		return func() {}
	}
	t := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				vm.Lock()
				vm.timerQueue = append(vm.timerQueue, word)
				vm.Unlock()
			case <-done:
				t.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}

// drainTimerQueue runs any words enqueued by startTimer since the last
// call, from the outer loop's own goroutine.
func (vm *VM) drainTimerQueue() {
	vm.Lock()
	words := vm.timerQueue
	vm.timerQueue = nil
	vm.Unlock()

	for _, w := range words {
		if xt, ok := vm.Dict.Lookup(w); ok {
			if err := vm.Execute(xt); err != nil {
				vm.catch(err)
			}
		}
	}
}
