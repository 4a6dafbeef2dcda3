// Package busy tracks outstanding mutating operations and exposes a global
// busy/idle signal for an activity indicator.
package busy

import (
	"sync"

	"github.com/roach88/heroes/internal/stream"
)

// Tracker counts operations between Start and Stop.
//
// Thread-safety: all methods are safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	pending int
	state   *stream.Subject[bool]
}

// New creates an idle Tracker.
func New() *Tracker {
	return &Tracker{state: stream.NewSubject(false)}
}

// Start records one more outstanding operation.
func (t *Tracker) Start() {
	t.mu.Lock()
	t.pending++
	becameBusy := t.pending == 1
	if becameBusy {
		t.state.Stage(true)
	}
	t.mu.Unlock()

	if becameBusy {
		t.state.Flush()
	}
}

// Stop records one finished operation. Extra calls never push the count
// below zero.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.pending == 0 {
		t.mu.Unlock()
		return
	}
	t.pending--
	becameIdle := t.pending == 0
	if becameIdle {
		t.state.Stage(false)
	}
	t.mu.Unlock()

	if becameIdle {
		t.state.Flush()
	}
}

// Pending returns the number of outstanding operations.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Busy reports whether any operation is outstanding.
func (t *Tracker) Busy() bool {
	return t.Pending() > 0
}

// Observe registers fn for busy/idle transitions. fn receives the current
// state immediately, then each transition.
func (t *Tracker) Observe(fn func(busy bool)) (cancel func()) {
	return t.state.Subscribe(fn)
}
