// Package pagination parses page/page_size query parameters and builds
// response metadata for page-numbered listings.
package pagination

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/friendgraph/friendgraph-api/internal/pkg/response"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrInvalidPage is returned for a malformed page number or one past the last page.
var ErrInvalidPage = errors.New("invalid page")

// Params represents a requested page
type Params struct {
	Page     int
	PageSize int
}

// FromRequest reads page and page_size from the query string.
// page_size falls back to the default when malformed and is clamped to MaxPageSize.
func FromRequest(r *http.Request) (Params, error) {
	q := r.URL.Query()
	p := Params{Page: 1, PageSize: DefaultPageSize}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return p, ErrInvalidPage
		}
		p.Page = page
	}

	if v := q.Get("page_size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 {
			p.PageSize = min(size, MaxPageSize)
		}
	}

	return p, nil
}

// Limit returns the SQL LIMIT for the page
func (p Params) Limit() int {
	return p.PageSize
}

// Offset returns the SQL OFFSET for the page
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Check reports ErrInvalidPage when the page lies beyond the result set.
// The first page is always valid, even for an empty set.
func (p Params) Check(total int) error {
	if p.Page > 1 && p.Offset() >= total {
		return ErrInvalidPage
	}
	return nil
}

// Meta builds response metadata for a result set of total items
func (p Params) Meta(total int) response.Meta {
	pages := (total + p.PageSize - 1) / p.PageSize
	return response.Meta{
		Total:   total,
		Page:    p.Page,
		Limit:   p.PageSize,
		Pages:   pages,
		HasNext: p.Page*p.PageSize < total,
		HasPrev: p.Page > 1,
	}
}
