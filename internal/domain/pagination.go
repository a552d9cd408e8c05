package domain

// PaginatedResult carries one page of items along with paging metadata.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPaginatedResult builds a PaginatedResult, clamping page and limit to
// sane values.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return PaginatedResult[T]{Items: items, Total: total, Page: page, Limit: limit}
}
