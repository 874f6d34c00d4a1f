// Package pagination turns an (items, total) page into range headers.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	HeaderContentRange = "Content-Range"
	HeaderTotalCount   = "X-Total-Count"
	HeaderAcceptRanges = "Accept-Ranges"
	HeaderPage         = "X-Page"
	HeaderTotalPages   = "X-Total-Pages"
	HeaderHasNext      = "X-Has-Next"

	rangeUnit = "items"
)

// Meta is the pagination metadata derived from total, limit and offset.
type Meta struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// Compute derives page numbers. A zero limit is treated as a single page
// with nothing after it.
func Compute(total, limit, offset int) Meta {
	if limit <= 0 {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return Meta{Page: 1, TotalPages: pages}
	}
	return Meta{
		Page:       offset/limit + 1,
		TotalPages: (total + limit - 1) / limit,
		HasNext:    total > offset+limit,
	}
}

// ContentRange renders "items <first>-<last>/<total>". An empty page ends
// at offset rather than offset-1.
func ContentRange(offset, count, total int) string {
	end := offset
	if count > 0 {
		end = offset + count - 1
	}
	return fmt.Sprintf("%s %d-%d/%d", rangeUnit, offset, end, total)
}

// SetHeaders writes the range and pagination headers for a page of count
// items out of total.
func SetHeaders(h http.Header, limit, offset, count, total int) {
	meta := Compute(total, limit, offset)
	h.Set(HeaderContentRange, ContentRange(offset, count, total))
	h.Set(HeaderTotalCount, strconv.Itoa(total))
	h.Set(HeaderAcceptRanges, rangeUnit)
	h.Set(HeaderPage, strconv.Itoa(meta.Page))
	h.Set(HeaderTotalPages, strconv.Itoa(meta.TotalPages))
	h.Set(HeaderHasNext, strconv.FormatBool(meta.HasNext))
}
