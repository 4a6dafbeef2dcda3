// Package clock abstracts wall time and delayed callbacks so the gateway's
// simulated latency can be driven deterministically in tests.
//
// Production code uses System. Tests and the scenario harness use
// testutil.FakeClock, which only moves when told to.
package clock

import "time"

// Clock provides the current time and delayed callbacks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f once d has elapsed. f may run on another goroutine.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// System is the wall clock backed by package time.
//
// Thread-safety: System is stateless and safe for concurrent use.
type System struct{}

// New returns the system clock.
func New() Clock {
	return System{}
}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc.
func (System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NowMillis returns c.Now() as epoch milliseconds, the unit of
// hero.Record.CreatedAt.
func NowMillis(c Clock) int64 {
	return c.Now().UnixMilli()
}
