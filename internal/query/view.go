package query

import (
	"fmt"

	"github.com/roach88/heroes/internal/hero"
)

// View is the derived output: one page of the filtered records plus the
// filtered total.
type View struct {
	Items []hero.Record `json:"items"`
	Total int           `json:"total"` // filtered count, before pagination
	Page  Page          `json:"page"`  // descriptor after clamping
	Term  string        `json:"term"`
}

// PageCount returns the number of pages needed for Total records.
func (v View) PageCount() int {
	if v.Page.Size < 1 || v.Total == 0 {
		return 0
	}
	return (v.Total + v.Page.Size - 1) / v.Page.Size
}

// HasNext reports whether a page follows the current one.
func (v View) HasNext() bool {
	return v.Page.Index+1 < v.PageCount()
}

// HasPrev reports whether a page precedes the current one.
func (v View) HasPrev() bool {
	return v.Page.Index > 0
}

// RangeLabel renders the paginator label, e.g. "6 - 10 of 25", or
// "0 of 0" when nothing is visible.
func (v View) RangeLabel() string {
	if v.Total == 0 || v.Page.Size < 1 {
		return fmt.Sprintf("0 of %d", v.Total)
	}
	start := v.Page.Index*v.Page.Size + 1
	end := min((v.Page.Index+1)*v.Page.Size, v.Total)
	return fmt.Sprintf("%d - %d of %d", start, end, v.Total)
}

// Evaluate computes the View for q over records. It validates q.Page,
// filters, clamps the index and slices.
//
// Evaluate is a pure function with no side effects.
func Evaluate(records []hero.Record, q Query, matchBrand bool) (View, error) {
	if err := q.Page.Validate(); err != nil {
		return View{}, err
	}
	return evaluate(records, q.Term, NewMatcher(q.Term, matchBrand), q.Page), nil
}

// evaluate assumes page is valid.
func evaluate(records []hero.Record, term string, m Matcher, page Page) View {
	filtered := Filter(records, m)
	total := len(filtered)
	page = page.Clamp(total)
	start, end := page.Bounds(total)

	items := make([]hero.Record, end-start)
	copy(items, filtered[start:end])

	return View{
		Items: items,
		Total: total,
		Page:  page,
		Term:  term,
	}
}
