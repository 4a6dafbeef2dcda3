package stream

import (
	"sync"
	"sync/atomic"
)

type subscriber[T any] struct {
	fn     func(T)
	joined uint64 // seq of the value current at subscribe time
	active atomic.Bool
}

// delivery is one queued value. A nil target broadcasts to every subscriber
// that joined before seq; otherwise only target receives it.
type delivery[T any] struct {
	seq    uint64
	value  T
	target *subscriber[T]
}

// Subject is a current-value stream. See the package documentation for the
// delivery guarantees.
//
// Thread-safety: all methods are safe for concurrent use.
type Subject[T any] struct {
	mu       sync.Mutex
	value    T
	seq      uint64
	subs     []*subscriber[T]
	queue    []delivery[T]
	draining bool
}

// NewSubject creates a Subject holding initial.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		queue: make([]delivery[T], 0, 8),
	}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Seq returns the sequence number of the current value. It starts at 0 and
// increases by one per staged value.
func (s *Subject[T]) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Len returns the number of active subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Subscribe registers fn and delivers the current value to it.
//
// When no other delivery is in progress, fn has received the current value
// by the time Subscribe returns. Called from inside a callback of the same
// Subject, the initial delivery is queued behind the value being delivered.
//
// The returned cancel function is idempotent. After it returns, fn is not
// called again.
func (s *Subject[T]) Subscribe(fn func(T)) (cancel func()) {
	sub := &subscriber[T]{fn: fn}
	sub.active.Store(true)

	s.mu.Lock()
	sub.joined = s.seq
	s.subs = append(s.subs, sub)
	s.queue = append(s.queue, delivery[T]{seq: s.seq, value: s.value, target: sub})
	s.mu.Unlock()

	s.Flush()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(sub) })
	}
}

// Stage sets the current value and queues it for delivery without calling
// any subscriber. Pair with Flush.
func (s *Subject[T]) Stage(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.value = v
	s.queue = append(s.queue, delivery[T]{seq: s.seq, value: v})
}

// Publish stages v and flushes the queue.
func (s *Subject[T]) Publish(v T) {
	s.Stage(v)
	s.Flush()
}

// Flush delivers queued values until the queue is empty. If another Flush
// is already draining, Flush returns immediately.
func (s *Subject[T]) Flush() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	// A panicking subscriber must not leave the Subject stuck in draining.
	finished := false
	defer func() {
		if !finished {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()

	for {
		d, targets, ok := s.next()
		if !ok {
			finished = true
			return
		}
		for _, sub := range targets {
			if sub.active.Load() {
				sub.fn(d.value)
			}
		}
	}
}

// next pops the front delivery and resolves its recipients. When the queue
// is empty it clears draining under the same lock, so a concurrent Stage is
// either seen here or flushed by its own caller.
func (s *Subject[T]) next() (delivery[T], []*subscriber[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		s.draining = false
		return delivery[T]{}, nil, false
	}

	d := s.queue[0]
	// Zero the slot so the backing array does not pin delivered values.
	s.queue[0] = delivery[T]{}
	if len(s.queue) == 1 {
		s.queue = s.queue[:0]
	} else {
		s.queue = s.queue[1:]
	}

	if d.target != nil {
		return d, []*subscriber[T]{d.target}, true
	}

	targets := make([]*subscriber[T], 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.joined < d.seq {
			targets = append(targets, sub)
		}
	}
	return d, targets, true
}

func (s *Subject[T]) remove(sub *subscriber[T]) {
	sub.active.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
