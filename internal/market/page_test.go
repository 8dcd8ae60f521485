package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortProducts_PriceAsc(t *testing.T) {
	items := joined(
		Product{ID: "1", Price: 300},
		Product{ID: "2", Price: 100},
		Product{ID: "3", Price: 200},
	)

	sortProducts(items, "price", "asc")

	assert.Equal(t, []float64{100, 200, 300}, prices(items))
}

func TestSortProducts_DefaultIsPublishedAtDesc(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	items := joined(
		Product{ID: "old", PublishedAt: base},
		Product{ID: "new", PublishedAt: base.Add(48 * time.Hour)},
		Product{ID: "mid", PublishedAt: base.Add(24 * time.Hour)},
	)

	sortProducts(items, "", "")

	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "mid", items[1].ID)
	assert.Equal(t, "old", items[2].ID)
}

func TestSortProducts_TiesKeepFilteredOrder(t *testing.T) {
	items := joined(
		Product{ID: "a", Price: 100},
		Product{ID: "b", Price: 100},
		Product{ID: "c", Price: 50},
		Product{ID: "d", Price: 100},
	)

	asc := make([]JoinedProduct, len(items))
	copy(asc, items)
	sortProducts(asc, "price", "asc")
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(asc))

	desc := make([]JoinedProduct, len(items))
	copy(desc, items)
	sortProducts(desc, "price", "desc")
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(desc))
}

func TestSortProducts_UnknownKeyFallsBackToTitle(t *testing.T) {
	items := joined(
		Product{ID: "1", Title: "b"},
		Product{ID: "2", Title: "a"},
		Product{ID: "3", Title: "c"},
	)

	sortProducts(items, "whatever", "asc")
	assert.Equal(t, []string{"2", "1", "3"}, ids(items))
}

func TestPaginate_FirstPageWithNext(t *testing.T) {
	items := joined(
		Product{ID: "1", Price: 300},
		Product{ID: "2", Price: 100},
		Product{ID: "3", Price: 200},
	)
	sortProducts(items, "price", "asc")

	page, pg := paginate(items, 1, 2)

	require.Len(t, page, 2)
	assert.Equal(t, []float64{100, 200}, prices(page))
	assert.True(t, pg.HasNextPage)
	assert.False(t, pg.HasPrevPage)
	assert.Equal(t, 2, pg.TotalPages)
	assert.Equal(t, 3, pg.TotalItems)
}

func TestPaginate_PastTheEndIsEmptyNotError(t *testing.T) {
	items := joined(Product{ID: "1"}, Product{ID: "2"})

	page, pg := paginate(items, 9, 10)

	assert.Empty(t, page)
	assert.False(t, pg.HasNextPage)
	assert.True(t, pg.HasPrevPage)
	assert.Equal(t, 9, pg.CurrentPage)
	assert.Equal(t, 2, pg.TotalItems)
}

func TestPaginate_Defaults(t *testing.T) {
	items := make([]JoinedProduct, 25)

	page, pg := paginate(items, 0, 0)
	assert.Len(t, page, defaultLimit)
	assert.Equal(t, defaultPage, pg.CurrentPage)
	assert.Equal(t, 3, pg.TotalPages)

	page, _ = paginate(items, 1, 1000)
	assert.Len(t, page, 25)
}

func prices(items []JoinedProduct) []float64 {
	out := make([]float64, len(items))
	for i, p := range items {
		out[i] = p.Price
	}
	return out
}

func ids(items []JoinedProduct) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}
