// Package harness runs scripted scenarios against the hero catalog and
// records a deterministic trace for golden comparison.
//
// # Scenario Format
//
//	name: search_and_page
//	description: "Search narrows the list and paging walks it"
//	page_size: 5          # optional, default 5
//	match_brand: false    # optional
//	latency: 300ms        # optional, gateway latency
//	ids: [new-1, new-2]   # optional, ids for create steps
//	catalog: seed.yaml    # optional; or inline `heroes:`; default catalog otherwise
//	steps:
//	  - search: man
//	    expect: { total: 7, index: 0 }
//	  - page: 1
//	    expect: { names: [Ant-Man, Aquaman] }
//	  - create: { name: Wolverine, brand: Marvel, power: Healing }
//	  - advance: 300ms
//	  - update: { id: "5", name: Iron Man Mk II }
//	  - remove: "18"
//	    expect: { busy: true }
//
// Each step holds at most one action. Expectations are checked right after
// the step's action, against the pipeline's current view (total, index,
// names, first), the last settled update (found) or remove (removed), and
// the busy tracker (busy).
//
// # Determinism
//
// Every run uses a fresh in-memory store seeded at testutil.Epoch, a
// testutil.FakeClock that only moves on advance steps, and fixed ids. The
// trace lists every step, every view the pipeline emits, busy/idle
// transitions, and each settled or failed gateway operation, in the order
// they happen.
package harness
