package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/testutil"
)

func TestGet_Found(t *testing.T) {
	s := createTestStore(t, 5)
	got, ok := s.Get("h4")
	require.True(t, ok)
	assert.Equal(t, "Hero 4", got.Name)
}

func TestGet_Absent(t *testing.T) {
	s := createTestStore(t, 5)
	_, ok := s.Get("999")
	assert.False(t, ok)
}

func TestGet_TracksLatestSnapshot(t *testing.T) {
	s := createTestStore(t, 3)
	require.NoError(t, s.Insert(testutil.Hero("new", "Newcomer", "DC", "")))
	require.True(t, s.Delete("h1"))

	got, ok := s.Get("h3")
	require.True(t, ok)
	assert.Equal(t, "Hero 3", got.Name)

	got, ok = s.Get("new")
	require.True(t, ok)
	assert.Equal(t, "Newcomer", got.Name)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := createTestStore(t, 2)
	snap := s.Snapshot()
	snap[0] = hero.Record{ID: "evil"}

	got, ok := s.Get("h1")
	require.True(t, ok)
	assert.Equal(t, "Hero 1", got.Name)
	_, ok = s.Get("evil")
	assert.False(t, ok)
}
