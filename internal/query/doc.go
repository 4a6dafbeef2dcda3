// Package query derives the visible page of heroes from the canonical
// sequence, a free-text search term and a page descriptor.
//
// ARCHITECTURE:
//
// The package has a pure layer and a reactive layer:
//
//	[records] + [Query{Term, Page}] → Evaluate → View
//	                                    ↑
//	Store.Observe ─┐                    │
//	SetTerm ───────┼──→ Pipeline ───────┘──→ Subscribe(View)
//	SetPage ───────┘
//
// Evaluate is a pure function. Pipeline holds the three inputs, calls
// Evaluate whenever any of them changes, and publishes the result.
//
// RULES:
//
// Filter: the term is trimmed, NFC-normalized and case-folded, then matched
// as a substring of the folded Name (and Brand, when brand matching is on).
// An empty or whitespace-only term matches everything.
//
// Recompute is total: every change re-filters the full sequence.
//
// Clamp: if the page index points past the filtered set, it is moved to the
// last valid index, max(0, ceil(total/size)-1), before slicing. The emitted
// View always carries the corrected index.
//
// Term changes reset the index to 0. Page size changes keep the index
// unless the clamp applies. Index changes never touch the term.
//
// A page size below 1 is a configuration error (ErrInvalidPageSize), as is a
// negative index (ErrInvalidPageIndex). A rejected change leaves the
// Pipeline untouched.
package query
