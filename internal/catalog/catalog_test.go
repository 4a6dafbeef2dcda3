package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/heroes/internal/testutil"
)

func TestDefault_MatchesRoster(t *testing.T) {
	c := Default()
	require.Len(t, c.Heroes, 25)

	records, err := c.Records(testutil.Epoch)
	require.NoError(t, err)
	assert.Equal(t, testutil.Names(testutil.Roster()), testutil.Names(records))
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "Iron Man", records[4].Name)
}

func TestDefault_IsValid(t *testing.T) {
	problems, err := Default().Validate()
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestRecords_CreatedAtFromOffset(t *testing.T) {
	records, err := Default().Records(testutil.Epoch)
	require.NoError(t, err)

	assert.Equal(t, testutil.Epoch.Add(-500*time.Second).UnixMilli(), records[0].CreatedAt)
	assert.Equal(t, testutil.Epoch.Add(-4*time.Second).UnixMilli(), records[24].CreatedAt)
}

func TestRecords_BadDuration(t *testing.T) {
	c := &Catalog{Heroes: []Entry{{ID: "1", Name: "Xx", CreatedAgo: "soon"}}}
	_, err := c.Records(testutil.Epoch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_ago")
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("heroes:\n  - id: \"1\"\n    nmae: Typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nmae")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	data := `heroes:
  - id: a
    name: Storm
    power: Weather
    brand: Marvel
    created_ago: 1m
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Heroes, 1)
	assert.Equal(t, "Storm", c.Heroes[0].Name)

	problems, err := c.Validate()
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestValidate_SchemaViolations(t *testing.T) {
	c := &Catalog{Heroes: []Entry{
		{ID: "ok", Name: "Storm", Power: "Weather", Brand: "Marvel", CreatedAgo: "1s"},
		{ID: "short", Name: "X", Power: "Weather", Brand: "Marvel", CreatedAgo: "1s"},
		{ID: "brand", Name: "Spawn", Power: "Hellfire", Brand: "Image", CreatedAgo: "1s"},
		{ID: "ago", Name: "Thor", Power: "Thunder", Brand: "Marvel", CreatedAgo: "yesterday"},
	}}

	problems, err := c.Validate()
	require.NoError(t, err)
	require.NotEmpty(t, problems)

	indexes := map[int]bool{}
	for _, p := range problems {
		assert.Equal(t, ErrCodeSchema, p.Code)
		assert.NotEmpty(t, p.Message)
		indexes[p.Index] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, indexes)
}

func TestValidate_DuplicateIDs(t *testing.T) {
	c := &Catalog{Heroes: []Entry{
		{ID: "1", Name: "Storm", Power: "Weather", Brand: "Marvel", CreatedAgo: "1s"},
		{ID: "1", Name: "Rogue", Power: "Absorption", Brand: "Marvel", CreatedAgo: "2s"},
	}}

	problems, err := c.Validate()
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, ErrCodeDuplicateID, problems[0].Code)
	assert.Equal(t, 1, problems[0].Index)
	assert.Contains(t, problems[0].Error(), "heroes[0]")
}

func TestValidate_Empty(t *testing.T) {
	problems, err := (&Catalog{}).Validate()
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, ErrCodeEmpty, problems[0].Code)
	assert.Equal(t, -1, problems[0].Index)
}
