package blog

import "strconv"

// DefaultPageSize is the number of items per page.
const DefaultPageSize = 10

// Page describes one page of a listing.
type Page struct {
	ItemCount   int  `json:"item_count"`
	PageIndex   int  `json:"page_index"`
	PageSize    int  `json:"page_size"`
	PageCount   int  `json:"page_count"`
	Offset      int  `json:"offset"`
	Limit       int  `json:"limit"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage computes page boundaries. An index past the last page, or any
// index of an empty listing, yields page 1 with a zero limit.
func NewPage(itemCount, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := Page{
		ItemCount: itemCount,
		PageSize:  pageSize,
		PageCount: (itemCount + pageSize - 1) / pageSize,
	}
	if itemCount == 0 || pageIndex > p.PageCount {
		p.PageIndex = 1
	} else {
		p.PageIndex = pageIndex
		p.Offset = pageSize * (pageIndex - 1)
		p.Limit = pageSize
	}
	p.HasNext = p.PageIndex < p.PageCount
	p.HasPrevious = p.PageIndex > 1
	return p
}

// PageIndex parses a page query value. Invalid or non-positive values map to 1.
func PageIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
