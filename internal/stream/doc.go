// Package stream provides Subject, a current-value stream with ordered,
// reentrant-safe delivery.
//
// A Subject always holds a value. Subscribers receive the current value when
// they subscribe and then every value published after that, in publication
// order. The Subject never completes; a subscriber stops receiving values by
// calling the cancel function returned from Subscribe.
//
// # Delivery Model
//
// Publishing is split into two steps:
//
//  1. Stage records the new value and appends it to a FIFO delivery queue.
//     Stage never calls subscriber code, so it is safe to call while holding
//     the publisher's own lock. Staging order is delivery order.
//  2. Flush drains the queue. Only one goroutine drains at a time; a Flush
//     that finds a drain already in progress returns immediately and leaves
//     its values to the active drainer.
//
// Publish is Stage followed by Flush.
//
// A subscriber callback may publish to, or subscribe to, the same Subject:
// the new value is queued behind the value being delivered and handed out
// once the callback returns. Callbacks therefore never run concurrently for
// one Subject, and never observe values out of order.
//
// Each staged value carries a sequence number. A subscriber only receives
// values staged after it joined, so a late subscriber never sees a stale
// value after the current one.
package stream
