package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/store"
	"github.com/roach88/heroes/internal/testutil"
)

// viewRecorder collects every View a subscriber receives.
type viewRecorder struct {
	views []View
}

func (r *viewRecorder) observe(v View) {
	r.views = append(r.views, v)
}

func (r *viewRecorder) last() View {
	return r.views[len(r.views)-1]
}

func newRosterPipeline(t *testing.T, opts ...Option) (*store.Store, *Pipeline, *viewRecorder) {
	t.Helper()
	st, err := store.New(store.WithRecords(testutil.Roster()...))
	require.NoError(t, err)

	p, err := New(st, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	rec := &viewRecorder{}
	cancel := p.Subscribe(rec.observe)
	t.Cleanup(cancel)
	return st, p, rec
}

func TestPipeline_InitialView(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	require.Len(t, rec.views, 1)
	v := rec.last()
	assert.Equal(t, 25, v.Total)
	assert.Equal(t, Page{Index: 0, Size: DefaultPageSize}, v.Page)
	assert.Equal(t, []string{"Superman", "Spiderman", "Wonder Woman", "Batman", "Iron Man"}, testutil.Names(v.Items))
	assert.Equal(t, v, p.Current())
}

func TestPipeline_SearchTotal(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	p.SetTerm("MAN")
	v := rec.last()
	assert.Equal(t, 7, v.Total)
	assert.Equal(t, "MAN", v.Term)
	assert.Equal(t, []string{"Superman", "Spiderman", "Wonder Woman", "Batman", "Iron Man"}, testutil.Names(v.Items))
}

func TestPipeline_AdvancePage(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	require.NoError(t, p.SetPageIndex(1))
	v := rec.last()
	assert.Equal(t, 1, v.Page.Index)
	assert.Equal(t, testutil.Names(testutil.Roster()[5:10]), testutil.Names(v.Items))
}

func TestPipeline_TermChangeResetsIndex(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	require.NoError(t, p.SetPageIndex(3))
	require.Equal(t, 3, rec.last().Page.Index)

	p.SetTerm("a")
	assert.Equal(t, 0, rec.last().Page.Index)

	require.NoError(t, p.SetPageIndex(1))
	p.SetTerm("a") // same term still counts as a new query
	assert.Equal(t, 0, rec.last().Page.Index)
}

func TestPipeline_IndexChangeKeepsTerm(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	p.SetTerm("man")
	require.NoError(t, p.SetPageIndex(1))

	v := rec.last()
	assert.Equal(t, "man", v.Term)
	assert.Equal(t, 7, v.Total)
	assert.Equal(t, []string{"Ant-Man", "Aquaman"}, testutil.Names(v.Items))
}

func TestPipeline_SizeChangeKeepsValidIndex(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	require.NoError(t, p.SetPageIndex(2))
	require.NoError(t, p.SetPageSize(10))

	v := rec.last()
	assert.Equal(t, Page{Index: 2, Size: 10}, v.Page)
	assert.Len(t, v.Items, 5)
}

func TestPipeline_SizeChangeClampsInvalidIndex(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	require.NoError(t, p.SetPageIndex(4))
	require.NoError(t, p.SetPageSize(10))

	v := rec.last()
	assert.Equal(t, Page{Index: 2, Size: 10}, v.Page)
	assert.Equal(t, Page{Index: 2, Size: 10}, p.Query().Page)
}

func TestPipeline_DeleteClampsToPreviousPage(t *testing.T) {
	st, p, rec := newRosterPipeline(t)

	p.SetTerm("man")
	require.True(t, st.Delete("18")) // Aquaman: 6 matches left
	require.NoError(t, p.SetPageIndex(1))
	require.Equal(t, []string{"Ant-Man"}, testutil.Names(rec.last().Items))

	before := len(rec.views)
	require.True(t, st.Delete("14")) // Ant-Man, the 6th match

	require.Len(t, rec.views, before+1, "clamp happens within the same emission")
	v := rec.last()
	assert.Equal(t, 5, v.Total)
	assert.Equal(t, 0, v.Page.Index)
	assert.Equal(t, []string{"Superman", "Spiderman", "Wonder Woman", "Batman", "Iron Man"}, testutil.Names(v.Items))
}

func TestPipeline_ZeroResults(t *testing.T) {
	_, p, rec := newRosterPipeline(t)

	require.NoError(t, p.SetPageIndex(2))
	p.SetTerm("nobody")

	v := rec.last()
	assert.Equal(t, 0, v.Total)
	assert.Equal(t, 0, v.Page.Index)
	assert.Empty(t, v.Items)
	assert.Equal(t, "0 of 0", v.RangeLabel())
}

func TestPipeline_RecomputesOnStoreMutations(t *testing.T) {
	st, p, rec := newRosterPipeline(t)
	p.SetTerm("wol")
	require.Equal(t, 1, rec.last().Total)

	require.NoError(t, st.Insert(hero.Record{ID: "x", Name: "Wolfsbane", Brand: "Marvel"}))
	assert.Equal(t, 2, rec.last().Total)
	assert.Equal(t, "Wolfsbane", rec.last().Items[0].Name, "new records are first")

	_, err := st.ApplyPatch("x", hero.Patch{Name: hero.String("Rahne")})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.last().Total)
}

func TestPipeline_BrandMatchOption(t *testing.T) {
	_, p, rec := newRosterPipeline(t, WithBrandMatch(true))

	p.SetTerm("marvel")
	assert.Equal(t, 14, rec.last().Total)
}

func TestPipeline_RejectsInvalidPageSize(t *testing.T) {
	st, err := store.New(store.WithRecords(testutil.Roster()...))
	require.NoError(t, err)

	_, err = New(st, WithPageSize(0))
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	assert.Equal(t, 0, st.Observers(), "a rejected pipeline never subscribes")

	_, p, rec := newRosterPipeline(t)
	before := len(rec.views)
	assert.ErrorIs(t, p.SetPageSize(0), ErrInvalidPageSize)
	assert.ErrorIs(t, p.SetPage(-1, 5), ErrInvalidPageIndex)
	assert.Len(t, rec.views, before, "rejected changes emit nothing")
	assert.Equal(t, Page{Index: 0, Size: DefaultPageSize}, p.Query().Page)
}

func TestPipeline_CloseStopsRecompute(t *testing.T) {
	st, p, rec := newRosterPipeline(t)
	require.Equal(t, 1, st.Observers())

	p.Close()
	p.Close()
	assert.Equal(t, 0, st.Observers())

	before := len(rec.views)
	require.NoError(t, st.Insert(hero.Record{ID: "late", Name: "Late"}))
	p.SetTerm("x")
	assert.Len(t, rec.views, before)
	assert.Equal(t, 26, st.Len())
}

func TestPipeline_SubscriberCancel(t *testing.T) {
	st, p, _ := newRosterPipeline(t)

	rec := &viewRecorder{}
	cancel := p.Subscribe(rec.observe)
	require.Len(t, rec.views, 1)
	cancel()

	require.NoError(t, st.Insert(hero.Record{ID: "n", Name: "N"}))
	assert.Len(t, rec.views, 1)
	assert.Equal(t, 26, p.Current().Total)
}

func TestPipeline_SubscriberMayDriveInputs(t *testing.T) {
	_, p, _ := newRosterPipeline(t)

	var terms []string
	cancel := p.Subscribe(func(v View) {
		terms = append(terms, v.Term)
		if v.Term == "bat" {
			p.SetTerm("batman")
		}
	})
	defer cancel()

	p.SetTerm("bat")
	assert.Equal(t, []string{"", "bat", "batman"}, terms)
	assert.Equal(t, 1, p.Current().Total)
}
