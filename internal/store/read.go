package store

import "github.com/roach88/heroes/internal/hero"

// Get returns the record with the given id from the latest snapshot.
func (s *Store) Get(id string) (hero.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return hero.Record{}, false
	}
	return s.records[i], true
}

// Snapshot returns a copy of the current sequence.
func (s *Store) Snapshot() []hero.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]hero.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
