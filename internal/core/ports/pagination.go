package ports

// PageQuery carries the pagination and sort parameters shared by every list
// endpoint. SortBy names an API field; repositories map it to a stored field
// and fall back to their default when it is not sortable.
type PageQuery struct {
	Page     int // 1-based
	Limit    int // capped by the service layer
	SortBy   string
	SortDesc bool
}

// Skip is the number of rows to skip for this page.
func (q PageQuery) Skip() int64 {
	if q.Page < 1 {
		return 0
	}
	return int64(q.Page-1) * int64(q.Limit)
}

// Page is one page of results plus the numbers needed to render pagination.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// NewPage assembles a Page and computes TotalPages from total and q.Limit.
func NewPage[T any](items []T, total int64, q PageQuery) Page[T] {
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}
