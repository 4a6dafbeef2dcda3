package store

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/stream"
)

// Store owns the canonical hero sequence.
//
// Thread-safety: all methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	records []hero.Record // current snapshot; replaced, never mutated
	index   map[string]int
	subject *stream.Subject[[]hero.Record]
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*config)

type config struct {
	seed   []hero.Record
	logger *slog.Logger
}

// WithRecords seeds the store with records in the given order.
func WithRecords(records ...hero.Record) Option {
	return func(c *config) {
		c.seed = append(c.seed, records...)
	}
}

// WithLogger sets the logger used for mutation debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New creates a Store. It fails if the seed records contain a duplicate id.
func New(opts ...Option) (*Store, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	records := make([]hero.Record, len(cfg.seed))
	copy(records, cfg.seed)

	index, err := buildIndex(records)
	if err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	return &Store{
		records: records,
		index:   index,
		subject: stream.NewSubject(records),
		logger:  cfg.logger,
	}, nil
}

// Observe registers fn for snapshot notifications. fn receives the current
// snapshot immediately and then one snapshot per successful mutation.
//
// fn must not modify the slice it receives. The returned cancel function
// stops further notifications and has no effect on the store.
func (s *Store) Observe(fn func([]hero.Record)) (cancel func()) {
	return s.subject.Subscribe(fn)
}

// Observers returns the number of active observers.
func (s *Store) Observers() int {
	return s.subject.Len()
}

// Version returns the number of snapshots published since construction.
// It increases by exactly one per successful mutation.
func (s *Store) Version() uint64 {
	return s.subject.Seq()
}

// commit replaces the snapshot and stages it for delivery.
// Caller must hold s.mu; caller must call s.subject.Flush after unlocking.
func (s *Store) commit(next []hero.Record) {
	s.records = next
	// Rebuilding from a fresh slice cannot fail: callers maintain uniqueness.
	s.index, _ = buildIndex(next)
	s.subject.Stage(next)
}

func buildIndex(records []hero.Record) (map[string]int, error) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := index[r.ID]; dup {
			return nil, hero.NewDuplicateIDError(r.ID)
		}
		index[r.ID] = i
	}
	return index, nil
}
