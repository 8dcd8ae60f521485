package market

// sellersByID builds the lookup map once so joining stays O(sellers +
// products) instead of O(sellers * products).
func sellersByID(sellers []Seller) map[string]*Seller {
	byID := make(map[string]*Seller, len(sellers))
	for i := range sellers {
		byID[sellers[i].ID] = &sellers[i]
	}
	return byID
}

// attachSeller resolves the weak sellerId reference. A missing seller is a
// valid outcome, not an error; the product is simply orphaned.
func attachSeller(p Product, byID map[string]*Seller) JoinedProduct {
	return JoinedProduct{Product: p, Seller: byID[p.SellerID]}
}

func joinAll(products []Product, sellers []Seller, includeOrphans bool) []JoinedProduct {
	byID := sellersByID(sellers)

	out := make([]JoinedProduct, 0, len(products))
	for _, p := range products {
		jp := attachSeller(p, byID)
		if jp.Seller == nil && !includeOrphans {
			continue
		}
		out = append(out, jp)
	}
	return out
}
