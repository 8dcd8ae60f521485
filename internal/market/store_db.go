package market

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	saveTimeout  = 5 * time.Second
)

// PostgresStore keeps the Store contract of the flat files: load reads the
// whole collection, save replaces it in one transaction. The pos column
// preserves array order across round trips.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) LoadProducts(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, title, description, price, category, condition,
			       seller_id, views, published_at
			FROM products
			ORDER BY pos ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(
				&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
				&p.Condition, &p.SellerID, &p.Views, &p.PublishedAt,
			); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, &StorageError{Collection: CollectionProducts, Err: err}
	}
	return out, nil
}

func (s *PostgresStore) SaveProducts(ctx context.Context, products []Product) error {
	err := withTimeout(ctx, saveTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO products (pos, id, title, description, price, category,
			                      condition, seller_id, views, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, p := range products {
			if _, err := stmt.ExecContext(ctx,
				i, p.ID, p.Title, p.Description, p.Price, p.Category,
				p.Condition, p.SellerID, p.Views, p.PublishedAt,
			); err != nil {
				return err
			}
		}

		return tx.Commit()
	})

	if err != nil {
		return &StorageError{Collection: CollectionProducts, Err: err}
	}
	return nil
}

func (s *PostgresStore) LoadSellers(ctx context.Context) ([]Seller, error) {
	var out []Seller

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, location, description, type, verified,
			       rating, total_sales, member_since
			FROM sellers
			ORDER BY pos ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Seller, 0, 16)
		for rows.Next() {
			var sl Seller
			if err := rows.Scan(
				&sl.ID, &sl.Name, &sl.Location, &sl.Description, &sl.Type,
				&sl.Verified, &sl.Rating, &sl.TotalSales, &sl.MemberSince,
			); err != nil {
				return err
			}
			out = append(out, sl)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, &StorageError{Collection: CollectionSellers, Err: err}
	}
	return out, nil
}

func (s *PostgresStore) SaveSellers(ctx context.Context, sellers []Seller) error {
	err := withTimeout(ctx, saveTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM sellers`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sellers (pos, id, name, location, description, type,
			                     verified, rating, total_sales, member_since)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, sl := range sellers {
			if _, err := stmt.ExecContext(ctx,
				i, sl.ID, sl.Name, sl.Location, sl.Description, sl.Type,
				sl.Verified, sl.Rating, sl.TotalSales, sl.MemberSince,
			); err != nil {
				return err
			}
		}

		return tx.Commit()
	})

	if err != nil {
		return &StorageError{Collection: CollectionSellers, Err: err}
	}
	return nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
