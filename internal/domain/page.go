package domain

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects a one-based page of a result set.
type PageRequest struct {
	Page int
	Size int
}

// Validate checks that the page request is usable.
func (p PageRequest) Validate() error {
	if p.Page < 1 {
		return IllegalArgument("page must be greater than zero, got %d", p.Page)
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return IllegalArgument("size must be between 1 and %d, got %d", MaxPageSize, p.Size)
	}
	return nil
}

// Offset returns the number of records to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// PageResult is one page of a larger result set.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPageResult wraps the items of the requested page.
func NewPageResult[T any](items []T, total int64, req PageRequest) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Size)))
	}
	return PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.Size,
		TotalPages: totalPages,
	}
}
