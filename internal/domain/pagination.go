package domain

// PaginatedResult carries one page of a filtered listing together with the
// total for the identical filter. Pages is always ceil(Total/Limit).
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPaginatedResult[T any](items []T, page, limit int, total int64) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: PageCount(total, limit),
	}
}

func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
