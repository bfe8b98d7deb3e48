package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 8
	// MaxPageSize caps how many rows any listing query can request.
	MaxPageSize = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// FromRequest reads page and pageSize query parameters, falling back to defaults.
func FromRequest(r *http.Request) Params {
	return Normalize(Params{
		Page:     atoiOrZero(r.URL.Query().Get("page")),
		PageSize: atoiOrZero(r.URL.Query().Get("pageSize")),
	})
}

// Normalize enforces the configured defaults and maximums.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := Normalize(p)
	return (n.Page - 1) * n.PageSize
}

// Limit returns the row limit for the normalized params.
func (p Params) Limit() int {
	return Normalize(p).PageSize
}

func atoiOrZero(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
