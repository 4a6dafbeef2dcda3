package testutil

import (
	"fmt"
	"sync"

	"github.com/roach88/heroes/internal/hero"
)

// SequenceGenerator generates ids "<prefix>-1", "<prefix>-2", ...
//
// Unlike hero.FixedGenerator, which returns a predetermined list and panics
// when it runs out, SequenceGenerator never runs out. The scenario harness
// uses it when a scenario does not pin its ids.
//
// Thread-safety: SequenceGenerator is safe for concurrent use.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

var _ hero.IDGenerator = (*SequenceGenerator)(nil)

// NewSequenceGenerator creates a generator with the given prefix.
// If prefix is empty, "hero" is used.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "hero"
	}
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next id in the sequence.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// Hero builds a record for tests with a zero CreatedAt.
func Hero(id, name, brand, power string) hero.Record {
	return hero.Record{ID: id, Name: name, Brand: brand, Power: power}
}

// Heroes builds n records named "Hero 1" .. "Hero n" with ids "h1" .. "hn",
// alternating brands. Record i has CreatedAt i*1000.
func Heroes(n int) []hero.Record {
	out := make([]hero.Record, n)
	for i := range out {
		brand := "DC"
		if i%2 == 1 {
			brand = "Marvel"
		}
		out[i] = hero.Record{
			ID:        fmt.Sprintf("h%d", i+1),
			Name:      fmt.Sprintf("Hero %d", i+1),
			Brand:     brand,
			Power:     "Testing",
			CreatedAt: int64(i+1) * 1000,
		}
	}
	return out
}

// Names returns the Name of each record, in order.
func Names(records []hero.Record) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}
