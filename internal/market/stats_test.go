package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStats(t *testing.T) {
	products := []Product{
		{ID: "1", Price: 100, Views: 10, Category: CategoryGoods, Condition: ConditionNew},
		{ID: "2", Price: 200, Views: 30, Category: CategoryGoods, Condition: ConditionGood},
		{ID: "3", Price: 300, Views: 20, Category: CategoryElectronics, Condition: ConditionNew},
	}
	sellers := []Seller{
		{ID: "s1", Type: SellerIndividual, Verified: true, Location: "Riga", TotalSales: 5},
		{ID: "s2", Type: SellerCompany, Location: "Vilnius", TotalSales: 50},
		{ID: "s3", Type: SellerCompany, Verified: true, Location: "Riga", TotalSales: 20},
	}

	st := buildStats(products, sellers)

	assert.Equal(t, 3, st.TotalSellers)
	assert.Equal(t, 2, st.VerifiedSellers)
	assert.Equal(t, map[SellerType]int{SellerIndividual: 1, SellerCompany: 2}, st.SellersByType)

	assert.Equal(t, 3, st.TotalProducts)
	assert.Equal(t, 60, st.TotalViews)
	assert.InDelta(t, 200.0, st.AveragePrice, 1e-9)

	assert.Equal(t, 2, st.ProductsByCategory[CategoryGoods])
	assert.Equal(t, 1, st.ProductsByCategory[CategoryElectronics])
	assert.Equal(t, 2, st.ProductsByCondition[ConditionNew])

	require.Len(t, st.TopSellersBySales, 3)
	assert.Equal(t, "s2", st.TopSellersBySales[0].ID)
	assert.Equal(t, "s3", st.TopSellersBySales[1].ID)

	require.Len(t, st.TopProductsByViews, 3)
	assert.Equal(t, "2", st.TopProductsByViews[0].ID)

	assert.Equal(t, map[string]int{"Riga": 2, "Vilnius": 1}, st.SellersByLocation)
}

func TestBuildStats_TopListsCapAtFive(t *testing.T) {
	products := make([]Product, 8)
	for i := range products {
		products[i] = Product{ID: string(rune('a' + i)), Views: i}
	}

	st := buildStats(products, nil)

	require.Len(t, st.TopProductsByViews, 5)
	assert.Equal(t, 7, st.TopProductsByViews[0].Views)
	assert.Empty(t, st.TopSellersBySales)
}

func TestBuildStats_Empty(t *testing.T) {
	st := buildStats(nil, nil)

	assert.Zero(t, st.TotalProducts)
	assert.Zero(t, st.AveragePrice)
	assert.Empty(t, st.TopProductsByViews)
	assert.Empty(t, st.SellersByLocation)
}
