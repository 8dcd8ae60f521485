package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinAll_AttachesSellersByID(t *testing.T) {
	products := []Product{
		{ID: "1", SellerID: "s1"},
		{ID: "2", SellerID: "s2"},
	}
	sellers := []Seller{
		{ID: "s1", Name: "Anna"},
		{ID: "s2", Name: "TechShop"},
	}

	got := joinAll(products, sellers, true)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Seller)
	assert.Equal(t, "Anna", got[0].Seller.Name)
	require.NotNil(t, got[1].Seller)
	assert.Equal(t, "TechShop", got[1].Seller.Name)
}

func TestJoinAll_OrphanPolicy(t *testing.T) {
	products := []Product{
		{ID: "1", SellerID: "s1"},
		{ID: "2", SellerID: "deleted"},
	}
	sellers := []Seller{{ID: "s1"}}

	withOrphans := joinAll(products, sellers, true)
	require.Len(t, withOrphans, 2)
	assert.Nil(t, withOrphans[1].Seller)

	withoutOrphans := joinAll(products, sellers, false)
	require.Len(t, withoutOrphans, 1)
	assert.Equal(t, "1", withoutOrphans[0].ID)
}

func TestJoinAll_EmptySellers(t *testing.T) {
	products := []Product{{ID: "1", SellerID: "s1"}}

	got := joinAll(products, nil, true)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Seller)

	assert.Empty(t, joinAll(products, nil, false))
}
