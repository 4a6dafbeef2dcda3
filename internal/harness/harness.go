package harness

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/roach88/heroes/internal/busy"
	"github.com/roach88/heroes/internal/catalog"
	"github.com/roach88/heroes/internal/gateway"
	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/query"
	"github.com/roach88/heroes/internal/store"
	"github.com/roach88/heroes/internal/testutil"
)

// Harness holds the components wired for one scenario run.
type Harness struct {
	clock    *testutil.FakeClock
	store    *store.Store
	pipeline *query.Pipeline
	gateway  *gateway.Gateway
	tracker  *busy.Tracker
	fixed    *hero.FixedGenerator
	result   *Result

	lastFound   *bool
	lastRemoved *bool
}

// Run executes a scenario with logs discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger executes a scenario and returns its result.
//
// Each run gets a fresh store seeded at testutil.Epoch, a fake clock, and
// a deterministic id source, so two runs of the same scenario produce the
// same trace. An error is returned only if the scenario cannot be set up;
// failed expectations are reported in the Result.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	h, err := setup(scenario, logger)
	if err != nil {
		return nil, err
	}
	defer h.pipeline.Close()

	for i := range scenario.Steps {
		if err := h.execute(i+1, &scenario.Steps[i]); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return h.result, nil
}

func setup(s *Scenario, logger *slog.Logger) (*Harness, error) {
	clk := testutil.NewFakeClock(testutil.Epoch)

	seed, err := s.seed(clk.Now())
	if err != nil {
		return nil, err
	}

	st, err := store.New(store.WithRecords(seed...), store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("seeding store: %w", err)
	}

	h := &Harness{
		clock:   clk,
		store:   st,
		tracker: busy.New(),
		result:  NewResult(),
	}
	h.result.addTrace(fmt.Sprintf("scenario %s", s.Name))
	h.result.addTrace(fmt.Sprintf("seed %d heroes", len(seed)))

	gwOpts := []gateway.Option{
		gateway.WithClock(clk),
		gateway.WithTracker(h.tracker),
		gateway.WithLogger(logger),
	}
	if s.Latency != "" {
		d, _ := time.ParseDuration(s.Latency)
		gwOpts = append(gwOpts, gateway.WithLatency(d))
	}
	if len(s.IDs) > 0 {
		h.fixed = hero.NewFixedGenerator(s.IDs...)
		gwOpts = append(gwOpts, gateway.WithIDGenerator(h.fixed))
	} else {
		gwOpts = append(gwOpts, gateway.WithIDGenerator(testutil.NewSequenceGenerator("hero")))
	}
	h.gateway = gateway.New(st, gwOpts...)

	pOpts := []query.Option{
		query.WithBrandMatch(s.MatchBrand),
		query.WithLogger(logger),
	}
	if s.PageSize > 0 {
		pOpts = append(pOpts, query.WithPageSize(s.PageSize))
	}
	h.pipeline, err = query.New(st, pOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	h.pipeline.Subscribe(func(v query.View) {
		h.result.addTrace(formatView(v))
	})

	subscribed := false
	h.tracker.Observe(func(busy bool) {
		if !subscribed {
			return
		}
		if busy {
			h.result.addTrace("  busy")
		} else {
			h.result.addTrace("  idle")
		}
	})
	subscribed = true

	return h, nil
}

// seed resolves the scenario's initial records.
func (s *Scenario) seed(now time.Time) ([]hero.Record, error) {
	var cat *catalog.Catalog
	switch {
	case len(s.Heroes) > 0:
		cat = &catalog.Catalog{Heroes: s.Heroes}
	case s.Catalog != "":
		path := s.Catalog
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		var err error
		if cat, err = catalog.Load(path); err != nil {
			return nil, err
		}
	default:
		cat = catalog.Default()
	}
	return cat.Records(now)
}

func (h *Harness) execute(n int, step *Step) error {
	switch {
	case step.Search != nil:
		h.result.addTrace(fmt.Sprintf("> %d search %q", n, *step.Search))
		h.pipeline.SetTerm(*step.Search)

	case step.Page != nil:
		h.result.addTrace(fmt.Sprintf("> %d page %d", n, *step.Page))
		if err := h.pipeline.SetPageIndex(*step.Page); err != nil {
			h.result.addTrace(fmt.Sprintf("  rejected: %v", err))
		}

	case step.Size != nil:
		h.result.addTrace(fmt.Sprintf("> %d size %d", n, *step.Size))
		if err := h.pipeline.SetPageSize(*step.Size); err != nil {
			h.result.addTrace(fmt.Sprintf("  rejected: %v", err))
		}

	case step.Create != nil:
		if h.fixed != nil && h.fixed.Remaining() == 0 {
			return fmt.Errorf("create: no ids left in the ids list")
		}
		h.result.addTrace(fmt.Sprintf("> %d create %q %s", n, step.Create.Name, step.Create.Brand))
		h.gateway.Create(*step.Create).Then(func(rec hero.Record, err error) {
			if err != nil {
				h.result.addTrace(fmt.Sprintf("  failed create: %v", err))
				return
			}
			h.result.addTrace(fmt.Sprintf("  settled create %s %q", rec.ID, rec.Name))
		})

	case step.Update != nil:
		id := step.Update.ID
		h.result.addTrace(fmt.Sprintf("> %d update %s", n, id))
		h.gateway.Update(id, step.Update.Patch).Then(func(u gateway.Updated, err error) {
			if err != nil {
				h.result.addTrace(fmt.Sprintf("  failed update %s: %v", id, err))
				return
			}
			found := u.Found
			h.lastFound = &found
			if !found {
				h.result.addTrace(fmt.Sprintf("  settled update %s not found", id))
				return
			}
			h.result.addTrace(fmt.Sprintf("  settled update %s %q", id, u.Hero.Name))
		})

	case step.Remove != nil:
		id := *step.Remove
		h.result.addTrace(fmt.Sprintf("> %d remove %s", n, id))
		h.gateway.Remove(id).Then(func(removed bool, err error) {
			if err != nil {
				h.result.addTrace(fmt.Sprintf("  failed remove %s: %v", id, err))
				return
			}
			h.lastRemoved = &removed
			h.result.addTrace(fmt.Sprintf("  settled remove %s removed=%t", id, removed))
		})

	case step.Advance != "":
		d, err := time.ParseDuration(step.Advance)
		if err != nil {
			return err
		}
		h.result.addTrace(fmt.Sprintf("> %d advance %s", n, d))
		h.clock.Advance(d)
	}

	if step.Expect != nil {
		h.check(n, step.Expect)
	}
	return nil
}

// formatView renders one emitted view as a trace line, e.g.
//
//	view "man" index=0 size=5 | 1 - 5 of 7 | Superman, Spiderman, ...
func formatView(v query.View) string {
	items := "-"
	if len(v.Items) > 0 {
		items = strings.Join(names(v.Items), ", ")
	}
	return fmt.Sprintf("  view %q index=%d size=%d | %s | %s",
		v.Term, v.Page.Index, v.Page.Size, v.RangeLabel(), items)
}

func names(records []hero.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
