package market

import (
	"context"
	"errors"
	"fmt"
)

const (
	CollectionProducts = "products"
	CollectionSellers  = "sellers"

	// SchemaVersion is written to every persisted document root. Loads
	// accept version 0 (documents written before the field existed).
	SchemaVersion = 1
)

var ErrNotFound = errors.New("not found")

// StorageError wraps any failure to load or persist a collection. Callers
// treat it as fatal for the current operation; nothing retries.
type StorageError struct {
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: collection %s: %v", e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is the durable home of the two collections. Every load re-reads
// from the backend and every save overwrites the whole collection; there is
// no caching and no partial write.
type Store interface {
	Ping(ctx context.Context) error

	LoadProducts(ctx context.Context) ([]Product, error)
	SaveProducts(ctx context.Context, products []Product) error

	LoadSellers(ctx context.Context) ([]Seller, error)
	SaveSellers(ctx context.Context, sellers []Seller) error
}
