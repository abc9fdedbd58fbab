package queries

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPageNumber   = math.MaxInt32
)

// PageRequest is a 1-based page selector. Size is clamped rather than
// rejected so clients cannot force unbounded queries.
type PageRequest struct {
	Number int
	Size   int
}

func (p PageRequest) Normalize() PageRequest {
	if p.Number <= 0 {
		p.Number = 1
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset caps at MaxInt32 so an absurd page number reads as past the end
// instead of overflowing into a negative OFFSET.
func (p PageRequest) Offset() int32 {
	off := int64(p.Number-1) * int64(p.Size)
	if off > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(off)
}

func (p PageRequest) Limit() int32 {
	return int32(p.Size)
}

// Page is an offset-paginated result. A page number past the end yields an
// empty Items with the true TotalItems, not an error.
type Page struct {
	Items      []*BookingListItem `json:"items"`
	PageNumber int                `json:"page_number"`
	PageSize   int                `json:"page_size"`
	TotalItems int64              `json:"total_items"`
	TotalPages int                `json:"total_pages"`
}

func NewPage(items []*BookingListItem, req PageRequest, total int64) *Page {
	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	if items == nil {
		items = []*BookingListItem{}
	}
	return &Page{
		Items:      items,
		PageNumber: req.Number,
		PageSize:   req.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
