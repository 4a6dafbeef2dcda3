// Package store holds the canonical, ordered sequence of hero records.
//
// The Store is the only owner of the sequence. Readers receive copies: the
// snapshot slices handed to observers and returned by Snapshot are never
// mutated after publication, and every successful mutation publishes a new
// slice.
//
// # Ordering
//
// Insert prepends, so with no other ordering applied the sequence is
// newest-created-first. Seed records passed to New keep the order given.
// Display ordering beyond that is a view concern (see package query).
//
// # Notification
//
// Observe delivers the current snapshot immediately and then exactly one
// snapshot per successful Insert, ApplyPatch or Delete. Failed mutations
// (duplicate id, unknown id) publish nothing.
//
// A single mutex bounds each read-modify-publish step, so mutations are
// atomic with respect to each other and to observers: snapshots reach
// observers in mutation order, and no observer ever sees a half-applied
// mutation. Delivery itself runs outside the mutex via stream.Subject, so an
// observer may call back into the Store.
package store
