package market

import (
	"context"
	"sync"
)

// MemStore is the test double; load and save copy the slices so callers
// never share backing arrays with the store.
type MemStore struct {
	mu       sync.RWMutex
	products []Product
	sellers  []Seller
}

func NewMemStore() *MemStore {
	return &MemStore{
		products: []Product{},
		sellers:  []Seller{},
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) LoadProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemStore) SaveProducts(ctx context.Context, products []Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make([]Product, len(products))
	copy(s.products, products)
	return nil
}

func (s *MemStore) LoadSellers(ctx context.Context) ([]Seller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Seller, len(s.sellers))
	copy(out, s.sellers)
	return out, nil
}

func (s *MemStore) SaveSellers(ctx context.Context, sellers []Seller) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sellers = make([]Seller, len(sellers))
	copy(s.sellers, sellers)
	return nil
}
