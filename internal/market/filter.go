package market

import (
	"strconv"
	"strings"
)

// ListProductsQuery carries the optional predicates of the product list
// endpoint. Empty string means "filter absent"; an absent filter never
// excludes records. MinPrice/MaxPrice stay raw strings because an
// unparsable bound must degrade to an empty result set, not an error.
type ListProductsQuery struct {
	Search     string
	Category   string
	Condition  string
	MinPrice   string
	MaxPrice   string
	SellerID   string
	SellerType string

	VerifiedOnly   bool
	IncludeOrphans bool

	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type ListSellersQuery struct {
	Search   string
	Type     string
	Verified *bool

	Page  int
	Limit int
}

// numericBound is a parsed price filter. set with valid=false (the caller
// sent garbage) matches nothing.
type numericBound struct {
	set   bool
	valid bool
	v     float64
}

func parseBound(raw string) numericBound {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return numericBound{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return numericBound{set: true}
	}
	return numericBound{set: true, valid: true, v: v}
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := items[:0:0]
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// filterProducts applies the predicates as a conjunction in a fixed order:
// search, category, condition, price bounds, seller id, seller type,
// verified.
func filterProducts(items []JoinedProduct, q ListProductsQuery) []JoinedProduct {
	if q.Search != "" {
		items = keep(items, func(p JoinedProduct) bool {
			return containsFold(p.Title, q.Search) || containsFold(p.Description, q.Search)
		})
	}

	if q.Category != "" {
		items = keep(items, func(p JoinedProduct) bool {
			return string(p.Category) == q.Category
		})
	}

	if q.Condition != "" {
		items = keep(items, func(p JoinedProduct) bool {
			return string(p.Condition) == q.Condition
		})
	}

	if min := parseBound(q.MinPrice); min.set {
		items = keep(items, func(p JoinedProduct) bool {
			return min.valid && p.Price >= min.v
		})
	}

	if max := parseBound(q.MaxPrice); max.set {
		items = keep(items, func(p JoinedProduct) bool {
			return max.valid && p.Price <= max.v
		})
	}

	if q.SellerID != "" {
		items = keep(items, func(p JoinedProduct) bool {
			return p.SellerID == q.SellerID
		})
	}

	if q.SellerType != "" {
		items = keep(items, func(p JoinedProduct) bool {
			return p.Seller != nil && string(p.Seller.Type) == q.SellerType
		})
	}

	if q.VerifiedOnly {
		items = keep(items, func(p JoinedProduct) bool {
			return p.Seller != nil && p.Seller.Verified
		})
	}

	return items
}

func filterSellers(items []Seller, q ListSellersQuery) []Seller {
	if q.Search != "" {
		items = keep(items, func(s Seller) bool {
			return containsFold(s.Name, q.Search) ||
				containsFold(s.Location, q.Search) ||
				containsFold(s.Description, q.Search)
		})
	}

	if q.Type != "" {
		items = keep(items, func(s Seller) bool {
			return string(s.Type) == q.Type
		})
	}

	if q.Verified != nil {
		items = keep(items, func(s Seller) bool {
			return s.Verified == *q.Verified
		})
	}

	return items
}
