// Package pagination provides offset paging helpers shared by list endpoints.
package pagination

// DefaultPageSize is applied when a request does not specify page_size.
const DefaultPageSize = 10

// MaxPageSize caps page_size to keep list responses bounded.
const MaxPageSize = 200

// Pagination carries paging parameters bound from a list request.
type Pagination struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Normalize returns sanitized page and page_size values.
func (p Pagination) Normalize() (page, pageSize int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	pageSize = p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset returns the row offset for the normalized page.
func (p Pagination) Offset() int {
	page, pageSize := p.Normalize()
	return (page - 1) * pageSize
}

// Limit returns the normalized page size.
func (p Pagination) Limit() int {
	_, pageSize := p.Normalize()
	return pageSize
}

// PageInfo describes the page a list response covers.
type PageInfo struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// NewPageInfo builds a PageInfo from request paging and a total row count.
func NewPageInfo(p Pagination, total int64) PageInfo {
	page, pageSize := p.Normalize()
	return PageInfo{Page: page, PageSize: pageSize, Total: total}
}
