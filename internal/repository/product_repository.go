// This file defines the product catalog: CRUD over the `products` table,
// always scoped to a store so a seller can never touch another store's
// rows.  Image URL lists are stored as a JSON array in a single column.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/sellerapp/storefront-api/internal/model"
)

// ProductRepo encapsulates all database queries related to products.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create inserts a product row.  The caller has already enforced the
// 12-product and 3-image caps.  On success the ID and timestamp are
// populated.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	const qInsert = "INSERT INTO products (store_id, name, description, price_cents, images) VALUES (?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, p.StoreID, p.Name, p.Description, p.PriceCents, images)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT created_at FROM products WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt)
}

// Update rewrites a product's editable fields.  The store_id clause
// enforces ownership; zero affected-row matches surface as
// ErrProductNotFound.  MySQL reports 0 rows affected for a no-op update,
// so existence is checked explicitly in that case.
func (r *ProductRepo) Update(ctx context.Context, productID, storeID uint64, name, description string, priceCents uint64, imageURLs []string) error {
	images, err := json.Marshal(imageURLs)
	if err != nil {
		return err
	}
	const q = "UPDATE products SET name = ?, description = ?, price_cents = ?, images = ? WHERE id = ? AND store_id = ?"
	res, err := r.db.ExecContext(ctx, q, name, description, priceCents, images, productID, storeID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByIDAndStore(ctx, productID, storeID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a product owned by the given store.
func (r *ProductRepo) Delete(ctx context.Context, productID, storeID uint64) error {
	const q = "DELETE FROM products WHERE id = ? AND store_id = ?"
	res, err := r.db.ExecContext(ctx, q, productID, storeID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetByIDAndStore fetches a product only if it belongs to the store.
func (r *ProductRepo) GetByIDAndStore(ctx context.Context, productID, storeID uint64) (*model.Product, error) {
	const q = "SELECT id, store_id, name, description, price_cents, images, created_at FROM products WHERE id = ? AND store_id = ?"
	row := r.db.QueryRowContext(ctx, q, productID, storeID)
	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByStore returns all products of a store, newest first.
func (r *ProductRepo) ListByStore(ctx context.Context, storeID uint64) ([]model.Product, error) {
	const q = "SELECT id, store_id, name, description, price_cents, images, created_at FROM products WHERE store_id = ? ORDER BY created_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// CountByStore returns how many products the store currently lists.  The
// seller handler checks this against the cap before any image upload.
func (r *ProductRepo) CountByStore(ctx context.Context, storeID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE store_id = ?", storeID).Scan(&n)
	return n, err
}

func scanProduct(scan func(dest ...any) error) (*model.Product, error) {
	var (
		p      model.Product
		images []byte
	)
	if err := scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.PriceCents, &images, &p.CreatedAt); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}
