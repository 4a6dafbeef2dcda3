package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/testutil"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "man", Normalize("  mAn  "))
	assert.Equal(t, "", Normalize("   \t"))
	// A decomposed "E" plus combining acute composes, then folds like "É".
	assert.Equal(t, Normalize("E\u0301CLAIR"), Normalize("\u00c9clair"))
	assert.Equal(t, "\u00e9clair", Normalize("\u00c9CLAIR"))
}

func TestMatcher_CaseInsensitiveSubstring(t *testing.T) {
	m := NewMatcher("  mAn  ", false)

	assert.True(t, m.Match(hero.Record{Name: "Superman"}))
	assert.True(t, m.Match(hero.Record{Name: "Iron Man"}))
	assert.True(t, m.Match(hero.Record{Name: "Ant-Man"}))
	assert.False(t, m.Match(hero.Record{Name: "Thor"}))
}

func TestMatcher_EmptyTermMatchesAll(t *testing.T) {
	for _, term := range []string{"", " ", "\t\n"} {
		m := NewMatcher(term, false)
		assert.True(t, m.MatchesAll())
		assert.True(t, m.Match(hero.Record{}))
	}
}

func TestMatcher_BrandPolicy(t *testing.T) {
	r := hero.Record{Name: "Thor", Brand: "Marvel"}

	assert.False(t, NewMatcher("marvel", false).Match(r))
	assert.True(t, NewMatcher("marvel", true).Match(r))
}

func TestFilter_ManScenario(t *testing.T) {
	got := Filter(testutil.Roster(), NewMatcher("man", false))
	assert.Equal(t, []string{
		"Superman", "Spiderman", "Wonder Woman", "Batman", "Iron Man", "Ant-Man", "Aquaman",
	}, testutil.Names(got))
}

func TestFilter_BrandCounts(t *testing.T) {
	roster := testutil.Roster()

	assert.Len(t, Filter(roster, NewMatcher("marvel", false)), 1, "only Captain Marvel by name")
	assert.Len(t, Filter(roster, NewMatcher("marvel", true)), 14)
	assert.Len(t, Filter(roster, NewMatcher("DC", true)), 11)
}

func TestFilter_ReturnsNewSlice(t *testing.T) {
	roster := testutil.Roster()
	got := Filter(roster, NewMatcher("", false))
	got[0].Name = "Changed"
	assert.Equal(t, "Superman", roster[0].Name)
}

// TestFilter_TotalEqualsMatchCount checks the count property for many terms.
func TestFilter_TotalEqualsMatchCount(t *testing.T) {
	roster := testutil.Roster()
	terms := []string{"", "a", "AN", "man", "black", "captain", "zzz", "-", " e ", "Green"}

	for _, term := range terms {
		m := NewMatcher(term, false)
		want := 0
		for _, r := range roster {
			if m.Match(r) {
				want++
			}
		}
		view, err := Evaluate(roster, Query{Term: term, Page: Page{Size: 5}}, false)
		assert.NoError(t, err)
		assert.Equal(t, want, view.Total, "term %q", term)
	}
}
