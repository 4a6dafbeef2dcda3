package harness

import (
	"fmt"
	"strings"
)

// check compares the expectation with the current state and records any
// mismatch.
func (h *Harness) check(n int, e *Expect) {
	v := h.pipeline.Current()
	fail := func(format string, args ...any) {
		h.result.AddError(fmt.Sprintf("step %d: ", n) + fmt.Sprintf(format, args...))
	}

	if e.Total != nil && v.Total != *e.Total {
		fail("total: got %d, want %d", v.Total, *e.Total)
	}
	if e.Index != nil && v.Page.Index != *e.Index {
		fail("index: got %d, want %d", v.Page.Index, *e.Index)
	}
	if e.Names != nil {
		got := names(v.Items)
		if strings.Join(got, "\x00") != strings.Join(e.Names, "\x00") {
			fail("names: got %q, want %q", got, e.Names)
		}
	}
	if e.First != nil {
		switch {
		case len(v.Items) == 0:
			fail("first: view is empty, want %q", *e.First)
		case v.Items[0].Name != *e.First:
			fail("first: got %q, want %q", v.Items[0].Name, *e.First)
		}
	}
	if e.Found != nil {
		switch {
		case h.lastFound == nil:
			fail("found: no update has settled")
		case *h.lastFound != *e.Found:
			fail("found: got %t, want %t", *h.lastFound, *e.Found)
		}
	}
	if e.Removed != nil {
		switch {
		case h.lastRemoved == nil:
			fail("removed: no remove has settled")
		case *h.lastRemoved != *e.Removed:
			fail("removed: got %t, want %t", *h.lastRemoved, *e.Removed)
		}
	}
	if e.Busy != nil && h.tracker.Busy() != *e.Busy {
		fail("busy: got %t, want %t", h.tracker.Busy(), *e.Busy)
	}
}
