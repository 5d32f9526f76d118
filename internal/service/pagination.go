package service

import (
	"math"

	"facilityassist/internal/repository"
)

const (
	// DefaultPageSize applies when the caller omits or zeroes the size.
	DefaultPageSize = 5
	// MaxPageSize caps requested page sizes.
	MaxPageSize = 100
)

// PageInfo is the pagination metadata attached to every list response.
// CurrentPage is 1-based even though the request page parameter is 0-based.
type PageInfo struct {
	TotalCount  int  `json:"total_count"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NormalizePage clamps a 0-based page index and a page size to sane values
// and returns the limit/offset query to run.
func NormalizePage(page, size int) (int, int, repository.PageQuery) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	// Keep page * size inside int range; an unchecked product would wrap
	// negative and break the OFFSET clause.
	if page > (math.MaxInt-size)/size {
		page = (math.MaxInt - size) / size
	}
	return page, size, repository.PageQuery{Limit: size, Offset: page * size}
}

// NewPageInfo computes the metadata for a page request against a total count.
func NewPageInfo(page, size, total int) PageInfo {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	current := page + 1
	return PageInfo{
		TotalCount:  total,
		CurrentPage: current,
		TotalPages:  totalPages,
		HasNext:     current < totalPages,
		HasPrevious: current > 1,
	}
}

// SinglePageInfo describes an unpaginated "all" listing: everything fits on
// one page by definition.
func SinglePageInfo(total int) PageInfo {
	return PageInfo{
		TotalCount:  total,
		CurrentPage: 1,
		TotalPages:  1,
		HasNext:     false,
		HasPrevious: false,
	}
}
