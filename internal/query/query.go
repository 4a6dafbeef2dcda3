package query

import (
	"errors"
	"fmt"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 5

var (
	// ErrInvalidPageSize is returned for a page size below 1.
	ErrInvalidPageSize = errors.New("page size must be at least 1")

	// ErrInvalidPageIndex is returned for a negative page index.
	ErrInvalidPageIndex = errors.New("page index must not be negative")
)

// Page is a page descriptor: the zero-based page Index and the page Size.
type Page struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

// Validate checks the descriptor. It does not check the index against any
// particular total; Clamp does that.
func (p Page) Validate() error {
	if p.Size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.Size)
	}
	if p.Index < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageIndex, p.Index)
	}
	return nil
}

// LastIndex returns the last valid index for total filtered records:
// max(0, ceil(total/size)-1). Size must be positive.
func (p Page) LastIndex(total int) int {
	if total <= 0 {
		return 0
	}
	return (total - 1) / p.Size
}

// Clamp returns p with Index moved back to LastIndex(total) if it is past it.
func (p Page) Clamp(total int) Page {
	if last := p.LastIndex(total); p.Index > last {
		p.Index = last
	}
	return p
}

// Bounds returns the half-open slice range [start, end) of p within total
// records, clamped to total. An index past the end yields start == end.
func (p Page) Bounds(total int) (start, end int) {
	start = p.Index * p.Size
	if start > total {
		start = total
	}
	end = start + p.Size
	if end > total {
		end = total
	}
	return start, end
}

// Query is a search term plus a page descriptor.
type Query struct {
	Term string `json:"term"`
	Page Page   `json:"page"`
}
