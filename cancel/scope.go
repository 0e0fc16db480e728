// Package cancel provides a scoped, signal-driven cancellation flag for
// the LM driver's cooperative interrupt handling (spec.md §4.6: "On
// cancellation (external interrupt signal raised asynchronously), the
// next residual evaluation latches with an 'interrupted' error"). No
// library in the example corpus wraps os/signal (the pack's own
// fem.Start/End flush a log file and tear down MPI state, not POSIX
// signals), so this is built directly on the standard library,
// following the same "Start paired with deferred End" shape as
// fem/solver.go's Start/End.
package cancel

import (
	"os"
	"os/signal"
	"sync/atomic"
)

// Scope is a RAII-style binder: Bind installs a SIGINT handler
// that flips an atomic flag, and the returned release function (meant
// to be deferred, mirroring fem.Start/fem.End) restores the previous
// signal disposition.
type Scope struct {
	flag int32
	ch   chan os.Signal
}

// NewScope allocates an unbound, unset cancellation scope.
func NewScope() *Scope {
	return &Scope{}
}

// Bind installs the signal handler. It must be paired with a deferred
// call to the returned release function.
func (s *Scope) Bind() (release func()) {
	s.ch = make(chan os.Signal, 1)
	signal.Notify(s.ch, os.Interrupt)
	done := make(chan struct{})
	go func() {
		select {
		case <-s.ch:
			atomic.StoreInt32(&s.flag, 1)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(s.ch)
		close(done)
	}
}

// Cancelled reports whether a cancellation signal has been latched.
func (s *Scope) Cancelled() bool {
	return atomic.LoadInt32(&s.flag) != 0
}

// Reset clears the latched flag, so one scope can be reused across
// independent optimization runs sharing a process.
func (s *Scope) Reset() {
	atomic.StoreInt32(&s.flag, 0)
}
