package market

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type productsDoc struct {
	SchemaVersion int       `json:"schemaVersion"`
	Products      []Product `json:"products"`
}

type sellersDoc struct {
	SchemaVersion int      `json:"schemaVersion"`
	Sellers       []Seller `json:"sellers"`
}

// FileStore keeps each collection in one JSON document under dir. The
// mutexes serialize file access within this process; concurrent processes
// still race last-writer-wins, which is the accepted flat-file limitation.
type FileStore struct {
	dir string

	productsMu sync.Mutex
	sellersMu  sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return &StorageError{Collection: "data dir", Err: err}
	}
	return nil
}

// EnsureDefaults creates empty collection documents for any that are
// missing, so a fresh deployment starts serving instead of returning 500s.
// Existing files are left untouched.
func (s *FileStore) EnsureDefaults(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Collection: "data dir", Err: err}
	}

	if _, err := os.Stat(s.path(CollectionProducts)); os.IsNotExist(err) {
		if err := s.SaveProducts(ctx, []Product{}); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.path(CollectionSellers)); os.IsNotExist(err) {
		if err := s.SaveSellers(ctx, []Seller{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) LoadProducts(ctx context.Context) ([]Product, error) {
	s.productsMu.Lock()
	defer s.productsMu.Unlock()

	var doc productsDoc
	if err := s.readDoc(CollectionProducts, &doc); err != nil {
		return nil, err
	}
	if err := checkVersion(CollectionProducts, doc.SchemaVersion); err != nil {
		return nil, err
	}
	return doc.Products, nil
}

func (s *FileStore) SaveProducts(ctx context.Context, products []Product) error {
	s.productsMu.Lock()
	defer s.productsMu.Unlock()

	return s.writeDoc(CollectionProducts, productsDoc{
		SchemaVersion: SchemaVersion,
		Products:      products,
	})
}

func (s *FileStore) LoadSellers(ctx context.Context) ([]Seller, error) {
	s.sellersMu.Lock()
	defer s.sellersMu.Unlock()

	var doc sellersDoc
	if err := s.readDoc(CollectionSellers, &doc); err != nil {
		return nil, err
	}
	if err := checkVersion(CollectionSellers, doc.SchemaVersion); err != nil {
		return nil, err
	}
	return doc.Sellers, nil
}

func (s *FileStore) SaveSellers(ctx context.Context, sellers []Seller) error {
	s.sellersMu.Lock()
	defer s.sellersMu.Unlock()

	return s.writeDoc(CollectionSellers, sellersDoc{
		SchemaVersion: SchemaVersion,
		Sellers:       sellers,
	})
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) readDoc(collection string, v any) error {
	raw, err := os.ReadFile(s.path(collection))
	if err != nil {
		return &StorageError{Collection: collection, Err: err}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &StorageError{Collection: collection, Err: err}
	}
	return nil
}

// writeDoc writes to a temp file in the same directory and renames it over
// the target, so a crash mid-write never leaves a truncated document.
func (s *FileStore) writeDoc(collection string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Collection: collection, Err: err}
	}
	raw = append(raw, '\n')

	tmp, err := os.CreateTemp(s.dir, collection+"-*.json.tmp")
	if err != nil {
		return &StorageError{Collection: collection, Err: err}
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return &StorageError{Collection: collection, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return &StorageError{Collection: collection, Err: err}
	}

	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		_ = os.Remove(tmp.Name())
		return &StorageError{Collection: collection, Err: err}
	}
	return nil
}

func checkVersion(collection string, got int) error {
	if got < 0 || got > SchemaVersion {
		return &StorageError{
			Collection: collection,
			Err:        fmt.Errorf("unsupported schemaVersion %d", got),
		}
	}
	return nil
}
