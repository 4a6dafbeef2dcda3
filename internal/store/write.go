package store

import "github.com/roach88/heroes/internal/hero"

// Insert prepends a fully formed record. The caller assigns ID and
// CreatedAt.
//
// Returns a hero.Error with CodeDuplicateID if the id is already present;
// the store is unchanged and nothing is published.
func (s *Store) Insert(rec hero.Record) error {
	s.mu.Lock()
	if _, exists := s.index[rec.ID]; exists {
		s.mu.Unlock()
		return hero.NewDuplicateIDError(rec.ID)
	}

	next := make([]hero.Record, 0, len(s.records)+1)
	next = append(next, rec)
	next = append(next, s.records...)
	s.commit(next)
	size := len(next)
	s.mu.Unlock()

	s.logger.Debug("hero inserted", "id", rec.ID, "name", rec.Name, "size", size)
	s.subject.Flush()
	return nil
}

// ApplyPatch merges patch into the record at id and returns the merged
// record. ID and CreatedAt are always preserved.
//
// Returns a hero.Error with CodeNotFound if id is absent.
func (s *Store) ApplyPatch(id string, patch hero.Patch) (hero.Record, error) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return hero.Record{}, hero.NewNotFoundError(id)
	}

	merged := patch.Apply(s.records[i])
	next := make([]hero.Record, len(s.records))
	copy(next, s.records)
	next[i] = merged
	s.commit(next)
	s.mu.Unlock()

	s.logger.Debug("hero patched", "id", id)
	s.subject.Flush()
	return merged, nil
}

// Delete removes the record with the given id and reports whether one was
// removed. An unknown id is not an error: it returns false, leaves the
// store unchanged and publishes nothing.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return false
	}

	next := make([]hero.Record, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	s.commit(next)
	size := len(next)
	s.mu.Unlock()

	s.logger.Debug("hero deleted", "id", id, "size", size)
	s.subject.Flush()
	return true
}
