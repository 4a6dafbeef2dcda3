package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/testutil"
)

// createTestStore creates a store seeded with n generated heroes.
func createTestStore(t *testing.T, n int) *Store {
	t.Helper()
	s, err := New(WithRecords(testutil.Heroes(n)...))
	require.NoError(t, err)
	return s
}

// recorder collects every snapshot delivered to an observer.
type recorder struct {
	snapshots [][]hero.Record
}

func (r *recorder) observe(snapshot []hero.Record) {
	r.snapshots = append(r.snapshots, snapshot)
}

func (r *recorder) last() []hero.Record {
	return r.snapshots[len(r.snapshots)-1]
}

// assertUniqueIDs fails if any id appears twice.
func assertUniqueIDs(t *testing.T, records []hero.Record) {
	t.Helper()
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		require.False(t, seen[r.ID], "duplicate id %q", r.ID)
		seen[r.ID] = true
	}
}
