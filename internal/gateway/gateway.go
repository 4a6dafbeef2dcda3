// Package gateway presents create, update and remove as asynchronous
// operations with a fixed simulated latency.
//
// The store is mutated immediately, on the caller's goroutine; only the
// caller-visible completion is delayed. Several operations may be in flight
// at once: each store mutation is atomic, so interleaving is safe.
//
// Failure semantics:
//   - Update and Remove on an unknown id are not errors: they settle after
//     the latency with Found=false / false.
//   - A duplicate id on Create, or an error from an injected FaultFunc,
//     fails the future immediately, without latency and without retry.
package gateway

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/heroes/internal/clock"
	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/store"
)

// DefaultLatency is the simulated round trip of every operation.
const DefaultLatency = 300 * time.Millisecond

// Op names a gateway operation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// FaultFunc lets tests inject failures. A non-nil error aborts the
// operation before it touches the store. id is empty for OpCreate.
type FaultFunc func(op Op, id string) error

// Tracker is notified around every operation: Start before the store is
// touched, Stop once the future settles. *busy.Tracker implements it.
type Tracker interface {
	Start()
	Stop()
}

type nopTracker struct{}

func (nopTracker) Start() {}
func (nopTracker) Stop()  {}

// Updated is the result of Update.
type Updated struct {
	Hero  hero.Record `json:"hero"`
	Found bool        `json:"found"`
}

// Gateway is the asynchronous CRUD facade over a Store.
//
// Thread-safety: all methods are safe for concurrent use.
type Gateway struct {
	store   *store.Store
	clock   clock.Clock
	ids     hero.IDGenerator
	latency time.Duration
	tracker Tracker
	fault   FaultFunc
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLatency sets the simulated latency. Default: DefaultLatency.
func WithLatency(d time.Duration) Option {
	return func(g *Gateway) {
		g.latency = d
	}
}

// WithClock sets the clock used for CreatedAt and for delaying completion.
// Default: the system clock.
func WithClock(c clock.Clock) Option {
	return func(g *Gateway) {
		g.clock = c
	}
}

// WithIDGenerator sets the id source for Create. Default: UUIDv7.
func WithIDGenerator(gen hero.IDGenerator) Option {
	return func(g *Gateway) {
		g.ids = gen
	}
}

// WithTracker sets the busy tracker notified around each operation.
func WithTracker(t Tracker) Option {
	return func(g *Gateway) {
		g.tracker = t
	}
}

// WithFault installs a fault injector.
func WithFault(fn FaultFunc) Option {
	return func(g *Gateway) {
		g.fault = fn
	}
}

// WithLogger sets the logger for operation logs.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// New creates a Gateway over st.
func New(st *store.Store, opts ...Option) *Gateway {
	g := &Gateway{
		store:   st,
		clock:   clock.New(),
		ids:     hero.UUIDv7Generator{},
		latency: DefaultLatency,
		tracker: nopTracker{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// Latency returns the configured simulated latency.
func (g *Gateway) Latency() time.Duration {
	return g.latency
}

// Create assigns an id and a CreatedAt of now, prepends the record to the
// store and settles with it after the latency.
func (g *Gateway) Create(in hero.Input) *Future[hero.Record] {
	g.tracker.Start()
	if err := g.inject(OpCreate, ""); err != nil {
		return failNow[hero.Record](g, OpCreate, err)
	}

	rec := hero.Record{
		ID:        g.ids.Generate(),
		Name:      in.Name,
		Brand:     in.Brand,
		Power:     in.Power,
		CreatedAt: clock.NowMillis(g.clock),
	}
	if err := g.store.Insert(rec); err != nil {
		return failNow[hero.Record](g, OpCreate, fmt.Errorf("create hero: %w", err))
	}

	g.logger.Debug("gateway create", "id", rec.ID, "name", rec.Name)
	return settleLater(g, OpCreate, rec)
}

// Update merges patch into the record at id. It settles after the latency
// with the merged record, or with Found=false if id does not exist.
func (g *Gateway) Update(id string, patch hero.Patch) *Future[Updated] {
	g.tracker.Start()
	if err := g.inject(OpUpdate, id); err != nil {
		return failNow[Updated](g, OpUpdate, err)
	}

	merged, err := g.store.ApplyPatch(id, patch)
	switch {
	case hero.IsNotFound(err):
		g.logger.Debug("gateway update: not found", "id", id)
		return settleLater(g, OpUpdate, Updated{})
	case err != nil:
		return failNow[Updated](g, OpUpdate, fmt.Errorf("update hero: %w", err))
	}

	g.logger.Debug("gateway update", "id", id)
	return settleLater(g, OpUpdate, Updated{Hero: merged, Found: true})
}

// Remove deletes the record at id and settles after the latency with
// whether a record was removed.
func (g *Gateway) Remove(id string) *Future[bool] {
	g.tracker.Start()
	if err := g.inject(OpRemove, id); err != nil {
		return failNow[bool](g, OpRemove, err)
	}

	removed := g.store.Delete(id)
	g.logger.Debug("gateway remove", "id", id, "removed", removed)
	return settleLater(g, OpRemove, removed)
}

func (g *Gateway) inject(op Op, id string) error {
	if g.fault == nil {
		return nil
	}
	if err := g.fault(op, id); err != nil {
		return fmt.Errorf("%s hero: %w", op, err)
	}
	return nil
}

// settleLater schedules the future to settle with v once the latency has
// elapsed on the gateway's clock.
func settleLater[T any](g *Gateway, op Op, v T) *Future[T] {
	f := newFuture[T]()
	g.clock.AfterFunc(g.latency, func() {
		f.settle(v, nil)
		g.tracker.Stop()
		g.logger.Debug("gateway settled", "op", op)
	})
	return f
}

// failNow settles the future with err immediately.
func failNow[T any](g *Gateway, op Op, err error) *Future[T] {
	g.logger.Warn("gateway operation failed", "op", op, "error", err)
	f := newFuture[T]()
	var zero T
	f.settle(zero, err)
	g.tracker.Stop()
	return f
}
