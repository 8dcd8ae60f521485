package market

import "sort"

const topN = 5

type Stats struct {
	TotalSellers    int                `json:"totalSellers"`
	VerifiedSellers int                `json:"verifiedSellers"`
	SellersByType   map[SellerType]int `json:"sellersByType"`

	TotalProducts int     `json:"totalProducts"`
	TotalViews    int     `json:"totalViews"`
	AveragePrice  float64 `json:"averagePrice"`

	ProductsByCategory  map[Category]int  `json:"productsByCategory"`
	ProductsByCondition map[Condition]int `json:"productsByCondition"`

	TopSellersBySales  []Seller  `json:"topSellersBySales"`
	TopProductsByViews []Product `json:"topProductsByViews"`

	SellersByLocation map[string]int `json:"sellersByLocation"`
}

func buildStats(products []Product, sellers []Seller) Stats {
	st := Stats{
		TotalSellers:        len(sellers),
		TotalProducts:       len(products),
		SellersByType:       make(map[SellerType]int),
		ProductsByCategory:  make(map[Category]int),
		ProductsByCondition: make(map[Condition]int),
		SellersByLocation:   make(map[string]int),
	}

	var priceSum float64
	for _, p := range products {
		st.TotalViews += p.Views
		priceSum += p.Price
		st.ProductsByCategory[p.Category]++
		st.ProductsByCondition[p.Condition]++
	}
	if len(products) > 0 {
		st.AveragePrice = priceSum / float64(len(products))
	}

	for _, s := range sellers {
		if s.Verified {
			st.VerifiedSellers++
		}
		st.SellersByType[s.Type]++
		st.SellersByLocation[s.Location]++
	}

	st.TopSellersBySales = topSellers(sellers)
	st.TopProductsByViews = topProducts(products)

	return st
}

func topSellers(sellers []Seller) []Seller {
	ranked := make([]Seller, len(sellers))
	copy(ranked, sellers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSales > ranked[j].TotalSales
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func topProducts(products []Product) []Product {
	ranked := make([]Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
