// Package uithread confines accessibility and event-synthesis calls to a
// single OS thread. The host platform requires these primitives to be
// driven from the thread owning the UI event loop; routing every call
// through Do is the serialization mechanism for tree reads and input
// synthesis. Orchestration (session store, wait polling, I/O) runs on
// arbitrary goroutines and marshals in per call.
package uithread

import "runtime"

var calls chan func()

// Run locks the calling goroutine to its OS thread and services marshaled
// calls until main returns. Call from func main(); main itself runs on a
// separate goroutine.
func Run(main func()) {
	runtime.LockOSThread()
	calls = make(chan func())
	done := make(chan struct{})
	go func() {
		defer close(done)
		main()
	}()
	for {
		select {
		case f := <-calls:
			f()
		case <-done:
			return
		}
	}
}

// Do runs f on the UI-affinity thread and waits for it to finish.
// Before Run has started (unit tests, pure-computation paths) f runs
// inline on the caller's goroutine.
func Do(f func()) {
	if calls == nil {
		f()
		return
	}
	wait := make(chan struct{})
	calls <- func() {
		defer close(wait)
		f()
	}
	<-wait
}
