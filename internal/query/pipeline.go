package query

import (
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/stream"
)

// Source is the upstream record stream. *store.Store implements it.
type Source interface {
	Observe(fn func([]hero.Record)) (cancel func())
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	pageSize   int
	matchBrand bool
	logger     *slog.Logger
}

// WithPageSize sets the initial page size. Default: DefaultPageSize.
func WithPageSize(size int) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// WithBrandMatch makes the filter match Brand as well as Name.
// Default: name only.
func WithBrandMatch(on bool) Option {
	return func(o *options) {
		o.matchBrand = on
	}
}

// WithLogger sets the logger used for recompute debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Pipeline combines the store's record stream, a search term and a page
// descriptor into a stream of Views.
//
// Every input change recomputes synchronously and publishes exactly one
// View. Subscribers are called outside the Pipeline's lock, so a subscriber
// may call SetTerm, SetPage or a gateway operation.
//
// Thread-safety: all methods are safe for concurrent use.
type Pipeline struct {
	mu         sync.Mutex
	records    []hero.Record
	term       string
	matcher    Matcher
	page       Page
	matchBrand bool
	closed     bool
	cancelSrc  func()

	views  *stream.Subject[View]
	logger *slog.Logger
}

// New subscribes to src and returns a running Pipeline with an empty term
// at page 0.
//
// Returns ErrInvalidPageSize if the configured page size is below 1.
func New(src Source, opts ...Option) (*Pipeline, error) {
	o := &options{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	page := Page{Index: 0, Size: o.pageSize}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		matcher:    NewMatcher("", o.matchBrand),
		page:       page,
		matchBrand: o.matchBrand,
		logger:     o.logger,
	}
	p.views = stream.NewSubject(evaluate(nil, "", p.matcher, page))

	cancel := src.Observe(p.onRecords)

	p.mu.Lock()
	p.cancelSrc = cancel
	p.mu.Unlock()

	return p, nil
}

// Subscribe registers fn for View updates. fn receives the current View
// immediately, then one View per recompute.
func (p *Pipeline) Subscribe(fn func(View)) (cancel func()) {
	return p.views.Subscribe(fn)
}

// Current returns the latest View.
func (p *Pipeline) Current() View {
	return p.views.Value()
}

// Query returns the current term and page descriptor.
func (p *Pipeline) Query() Query {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Query{Term: p.term, Page: p.page}
}

// SetTerm sets the search term and resets the page index to 0.
func (p *Pipeline) SetTerm(term string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.term = term
	p.matcher = NewMatcher(term, p.matchBrand)
	p.page.Index = 0
	p.recompute("term")
	p.mu.Unlock()

	p.views.Flush()
}

// SetPage sets both index and size. The index is clamped if it lies past
// the filtered set.
func (p *Pipeline) SetPage(index, size int) error {
	page := Page{Index: index, Size: size}
	if err := page.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.page = page
	p.recompute("page")
	p.mu.Unlock()

	p.views.Flush()
	return nil
}

// SetPageIndex changes the index and keeps the size.
func (p *Pipeline) SetPageIndex(index int) error {
	p.mu.Lock()
	size := p.page.Size
	p.mu.Unlock()
	return p.SetPage(index, size)
}

// SetPageSize changes the size and keeps the index unless it becomes
// invalid under the new size.
func (p *Pipeline) SetPageSize(size int) error {
	p.mu.Lock()
	index := p.page.Index
	p.mu.Unlock()
	return p.SetPage(index, size)
}

// Close unsubscribes from the source. Later store mutations and input
// changes no longer produce Views. Close is idempotent.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	cancel := p.cancelSrc
	p.cancelSrc = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (p *Pipeline) onRecords(records []hero.Record) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.records = records
	p.recompute("records")
	p.mu.Unlock()

	p.views.Flush()
}

// recompute evaluates the current inputs and stages the View.
// Caller must hold p.mu and must Flush after unlocking.
func (p *Pipeline) recompute(cause string) {
	view := evaluate(p.records, p.term, p.matcher, p.page)
	if view.Page != p.page {
		p.logger.Debug("page index clamped",
			"from", p.page.Index,
			"to", view.Page.Index,
			"total", view.Total,
		)
		p.page = view.Page
	}
	p.logger.Debug("view recomputed",
		"cause", cause,
		"term", p.term,
		"index", view.Page.Index,
		"size", view.Page.Size,
		"total", view.Total,
		"items", len(view.Items),
	)
	p.views.Stage(view)
}
