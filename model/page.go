// api/model/page.go
package model

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Filter is implemented by the typed list filters of every entity.
// Conditions maps column names to required values; Params maps query
// parameter names to values (nil when unset) for cache keys.
type Filter interface {
	Conditions() map[string]any
	Params() map[string]any
}

// Page is a 1-based page request.
type Page struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize fills in defaults and clamps the page size.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
}

type PageResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPageResult builds a page response for items out of total matches.
func NewPageResult[T any](items []T, total int64, page Page) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if page.Limit > 0 {
		totalPages = int((total + int64(page.Limit) - 1) / int64(page.Limit))
	}
	return &PageResult[T]{
		Data: items,
		Pagination: Pagination{
			TotalItems:  total,
			CurrentPage: page.Page,
			PageSize:    page.Limit,
			TotalPages:  totalPages,
		},
	}
}

// MapPage converts the items of a page result.
func MapPage[T, U any](in *PageResult[T], f func(T) U) *PageResult[U] {
	out := make([]U, len(in.Data))
	for i, item := range in.Data {
		out[i] = f(item)
	}
	return &PageResult[U]{Data: out, Pagination: in.Pagination}
}
