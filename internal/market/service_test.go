package market

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, products []Product, sellers []Seller) (*Service, *MemStore) {
	t.Helper()

	store := NewMemStore()
	ctx := context.Background()
	require.NoError(t, store.SaveProducts(ctx, products))
	require.NoError(t, store.SaveSellers(ctx, sellers))

	return NewService(store, IDSequential, zap.NewNop()), store
}

func TestCreateProduct_DefaultsAndGeneratedID(t *testing.T) {
	svc, _ := newTestService(t,
		[]Product{{ID: "3"}, {ID: "7"}},
		nil,
	)
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	p, err := svc.CreateProduct(context.Background(), NewProduct{
		Title:     "Bike",
		Price:     120,
		Category:  CategoryGoods,
		Condition: ConditionGood,
		SellerID:  "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, "8", p.ID)
	assert.Zero(t, p.Views)
	assert.Equal(t, frozen, p.PublishedAt)

	got, err := svc.GetProduct(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, "Bike", got.Title)
	assert.Nil(t, got.Seller)
}

func TestNewID_SkipsNonNumericIDs(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	assert.Equal(t, "1", svc.newID(nil))
	assert.Equal(t, "6", svc.newID([]string{"2", "5", "legacy-x"}))
	assert.Equal(t, "1", svc.newID([]string{"abc", "def"}))
}

func TestNewID_UUIDStrategy(t *testing.T) {
	svc := NewService(NewMemStore(), IDUUID, zap.NewNop())

	id := svc.newID([]string{"1", "2"})
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestUpdateProduct_ShallowMergeKeepsID(t *testing.T) {
	svc, _ := newTestService(t,
		[]Product{{ID: "1", Title: "Old", Price: 10, Views: 3}},
		nil,
	)

	newTitle := "New"
	newPrice := 25.0
	p, err := svc.UpdateProduct(context.Background(), "1", ProductPatch{
		Title: &newTitle,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "New", p.Title)
	assert.Equal(t, 25.0, p.Price)
	assert.Equal(t, 3, p.Views) // untouched fields survive the merge
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	_, err := svc.UpdateProduct(context.Background(), "404", ProductPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc, store := newTestService(t,
		[]Product{{ID: "1"}, {ID: "2"}},
		nil,
	)

	require.NoError(t, svc.DeleteProduct(context.Background(), "1"))

	left, err := store.LoadProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "2", left[0].ID)

	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), "1"), ErrNotFound)
}

func TestRecordView_IncrementsOnce(t *testing.T) {
	svc, _ := newTestService(t,
		[]Product{{ID: "1", Views: 41}, {ID: "2", Views: 7}},
		nil,
	)

	p, err := svc.RecordView(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 42, p.Views)

	other, err := svc.GetProduct(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 7, other.Views)
}

func TestDeleteSeller_CascadesProducts(t *testing.T) {
	svc, store := newTestService(t,
		[]Product{
			{ID: "1", SellerID: "s1"},
			{ID: "2", SellerID: "s2"},
			{ID: "3", SellerID: "s1"},
		},
		[]Seller{{ID: "s1"}, {ID: "s2"}},
	)

	cascaded, err := svc.DeleteSeller(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, cascaded)

	sellers, err := store.LoadSellers(context.Background())
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "s2", sellers[0].ID)

	products, err := store.LoadProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "2", products[0].ID)
}

func TestDeleteSeller_NoProductsCascadesZero(t *testing.T) {
	svc, _ := newTestService(t, nil, []Seller{{ID: "s1"}})

	cascaded, err := svc.DeleteSeller(context.Background(), "s1")
	require.NoError(t, err)
	assert.Zero(t, cascaded)
}

func TestCreateSeller_VerifiedStartsFalse(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	sl, err := svc.CreateSeller(context.Background(), NewSeller{
		Name: "Anna",
		Type: SellerIndividual,
	})
	require.NoError(t, err)

	assert.Equal(t, "1", sl.ID)
	assert.False(t, sl.Verified)
	assert.Equal(t, frozen, sl.MemberSince)
}

func TestGetSeller_IncludesOwnProducts(t *testing.T) {
	svc, _ := newTestService(t,
		[]Product{
			{ID: "1", SellerID: "s1"},
			{ID: "2", SellerID: "s2"},
			{ID: "3", SellerID: "s1"},
		},
		[]Seller{{ID: "s1", Name: "Anna"}, {ID: "s2"}},
	)

	d, err := svc.GetSeller(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "Anna", d.Name)
	assert.Equal(t, 2, d.TotalProducts)
	require.Len(t, d.Products, 2)
}

func TestListProducts_FullPipeline(t *testing.T) {
	svc, _ := newTestService(t,
		[]Product{
			{ID: "1", Price: 300, SellerID: "s1"},
			{ID: "2", Price: 100, SellerID: "s1"},
			{ID: "3", Price: 200, SellerID: "gone"},
		},
		[]Seller{{ID: "s1"}},
	)

	page, err := svc.ListProducts(context.Background(), ListProductsQuery{
		IncludeOrphans: true,
		SortBy:         "price",
		SortOrder:      "asc",
		Page:           1,
		Limit:          2,
	})
	require.NoError(t, err)

	require.Len(t, page.Products, 2)
	assert.Equal(t, "2", page.Products[0].ID)
	assert.Equal(t, "3", page.Products[1].ID)
	assert.Nil(t, page.Products[1].Seller)
	assert.True(t, page.Pagination.HasNextPage)

	noOrphans, err := svc.ListProducts(context.Background(), ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, noOrphans.Products, 2)
}
