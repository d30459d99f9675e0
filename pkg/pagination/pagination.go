package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads limit and offset from the query string. A missing or
// non-positive limit falls back to defaultLimit (DefaultLimit when that is
// not positive either); limits are capped at MaxLimit.
func FromContext(c echo.Context, defaultLimit int) Params {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset+p.Limit < total
}

// HasPrevious returns true if there are results before the current page.
func (p Params) HasPrevious() bool {
	return p.Offset > 0
}

// NextOffset returns the offset for the next page.
func (p Params) NextOffset() int {
	return p.Offset + p.Limit
}

// PreviousOffset returns the offset for the previous page.
// Returns 0 if the result would be negative.
func (p Params) PreviousOffset() int {
	prev := p.Offset - p.Limit
	if prev < 0 {
		return 0
	}
	return prev
}

// Link builds the path of the page at offset with the same limit.
func (p Params) Link(basePath string, offset int) string {
	return fmt.Sprintf("%s?offset=%d&limit=%d", basePath, offset, p.Limit)
}

// Page is one slice of an in-memory result set.
type Page[T any] struct {
	Items  []T
	Total  int
	Params Params
	Next   string
	Prev   string
}

// Slice cuts the page described by p out of items. An offset past the end
// yields an empty page. Next and Prev are links relative to basePath and
// empty when there is no such page.
func Slice[T any](items []T, p Params, basePath string) Page[T] {
	total := len(items)
	start := min(p.Offset, total)
	end := min(start+p.Limit, total)

	page := Page[T]{Items: items[start:end:end], Total: total, Params: p}
	if p.HasNext(total) {
		page.Next = p.Link(basePath, p.NextOffset())
	}
	if p.HasPrevious() {
		page.Prev = p.Link(basePath, p.PreviousOffset())
	}
	return page
}
