package market

import "sort"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	defaultSortBy = "publishedAt"
)

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// sortProducts orders in place by one key. The sort is stable on purpose:
// ties keep their relative order from the filtered sequence. Unknown keys
// fall back to the lexicographic title compare.
func sortProducts(items []JoinedProduct, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	var less func(a, b JoinedProduct) bool
	switch sortBy {
	case "price":
		less = func(a, b JoinedProduct) bool { return a.Price < b.Price }
	case "views":
		less = func(a, b JoinedProduct) bool { return a.Views < b.Views }
	case "publishedAt":
		less = func(a, b JoinedProduct) bool {
			return a.PublishedAt.UnixMilli() < b.PublishedAt.UnixMilli()
		}
	default:
		less = func(a, b JoinedProduct) bool { return a.Title < b.Title }
	}

	asc := sortOrder == "asc"
	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}

// paginate slices one 1-based page out of items. A page past the end is an
// empty slice with HasNextPage false, not an error.
func paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])

	return out, Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
