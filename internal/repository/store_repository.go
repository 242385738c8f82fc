// This file defines the store registry: CRUD and lookup operations over the
// `stores` table.  A Store is a seller's single storefront; public lookups
// resolve the URL slug against active stores only, with a short-lived Redis
// cache in front of the slug query.  Activation toggles invalidate the
// cache entry so a deactivated store disappears promptly.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sellerapp/storefront-api/internal/model"
)

// slugCacheTTL bounds how long a resolved storefront may be served from
// Redis after an admin deactivates it.
const slugCacheTTL = 30 * time.Second

// StoreRepo encapsulates all database queries related to stores.  The
// Redis client is optional; when nil, slug lookups always hit MySQL.
type StoreRepo struct {
	db  *sql.DB
	rdb *redis.Client
}

// NewStoreRepo constructs a StoreRepo with the provided DB handle and an
// optional Redis client for the slug resolution cache.
func NewStoreRepo(db *sql.DB, rdb *redis.Client) *StoreRepo {
	return &StoreRepo{db: db, rdb: rdb}
}

// Create inserts a new store.  On success the store's ID, timestamps and
// active flag are populated via a follow-up SELECT.  Duplicate-key
// failures are mapped onto ErrStoreExists (seller already owns a store)
// or ErrSlugTaken (name collision) by inspecting which unique index fired.
func (r *StoreRepo) Create(ctx context.Context, s *model.Store) error {
	const qInsert = "INSERT INTO stores (seller_id, name, slug, contact_phone) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, s.SellerID, s.Name, s.Slug, s.ContactPhone)
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "seller_id") {
				return ErrStoreExists
			}
			return ErrSlugTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = "SELECT is_active, created_at, updated_at FROM stores WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// GetBySeller fetches the store owned by the given seller, active or not.
// Returns ErrStoreNotFound when the seller has not completed onboarding.
func (r *StoreRepo) GetBySeller(ctx context.Context, sellerID uint64) (*model.Store, error) {
	const q = "SELECT id, seller_id, name, slug, contact_phone, is_active, created_at, updated_at FROM stores WHERE seller_id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, q, sellerID))
}

// GetByID fetches a store by primary key regardless of owner or state.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	const q = "SELECT id, seller_id, name, slug, contact_phone, is_active, created_at, updated_at FROM stores WHERE id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetActiveBySlug resolves a public slug to an active store.  Deactivated
// and unknown slugs both surface as ErrStoreNotFound so the storefront
// cannot leak the existence of a deactivated store.  Hits are cached in
// Redis for slugCacheTTL.
func (r *StoreRepo) GetActiveBySlug(ctx context.Context, slug string) (*model.Store, error) {
	if r.rdb != nil {
		if raw, err := r.rdb.Get(ctx, slugKey(slug)).Bytes(); err == nil {
			var s model.Store
			if json.Unmarshal(raw, &s) == nil && s.IsActive {
				return &s, nil
			}
		}
	}
	const q = "SELECT id, seller_id, name, slug, contact_phone, is_active, created_at, updated_at FROM stores WHERE slug = ? AND is_active = 1"
	s, err := r.scanOne(r.db.QueryRowContext(ctx, q, slug))
	if err != nil {
		return nil, err
	}
	if r.rdb != nil {
		if raw, err := json.Marshal(s); err == nil {
			// Cache write failures are ignored; the next lookup just hits MySQL.
			_ = r.rdb.Set(ctx, slugKey(slug), raw, slugCacheTTL).Err()
		}
	}
	return s, nil
}

// UpdateActive sets the store's active flag and evicts the slug cache
// entry so public resolution reflects the change without waiting out the
// cache TTL.  Returns ErrStoreNotFound when the id matches no row.
func (r *StoreRepo) UpdateActive(ctx context.Context, storeID uint64, active bool) error {
	s, err := r.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	const q = "UPDATE stores SET is_active = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, active, storeID); err != nil {
		return err
	}
	if r.rdb != nil {
		_ = r.rdb.Del(ctx, slugKey(s.Slug)).Err()
	}
	return nil
}

// AdminStoreRow is one row of the admin console listing: the store joined
// with its owner's account phone and derived per-store counts.
type AdminStoreRow struct {
	Store         model.Store
	OwnerPhone    string
	ProductCount  int
	WeeklyVisits  int
	MonthlyVisits int
	TotalVisits   int
}

// ListAll returns every store with its owner phone, product count and
// visit counts (7-day, 30-day and all-time), newest store first.  Admin
// only; there is no pagination because the platform caps each seller at
// one store.
func (r *StoreRepo) ListAll(ctx context.Context) ([]AdminStoreRow, error) {
	const q = `
SELECT s.id, s.seller_id, s.name, s.slug, s.contact_phone, s.is_active, s.created_at, s.updated_at,
	   u.phone,
	   (SELECT COUNT(*) FROM products p WHERE p.store_id = s.id),
	   (SELECT COUNT(*) FROM store_visits v WHERE v.store_id = s.id AND v.created_at >= DATE_SUB(NOW(), INTERVAL 7 DAY)),
	   (SELECT COUNT(*) FROM store_visits v WHERE v.store_id = s.id AND v.created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)),
	   (SELECT COUNT(*) FROM store_visits v WHERE v.store_id = s.id)
FROM stores s
JOIN users u ON u.id = s.seller_id
ORDER BY s.created_at DESC, s.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AdminStoreRow{}
	for rows.Next() {
		var row AdminStoreRow
		if err := rows.Scan(
			&row.Store.ID, &row.Store.SellerID, &row.Store.Name, &row.Store.Slug,
			&row.Store.ContactPhone, &row.Store.IsActive, &row.Store.CreatedAt, &row.Store.UpdatedAt,
			&row.OwnerPhone, &row.ProductCount, &row.WeeklyVisits, &row.MonthlyVisits, &row.TotalVisits,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *StoreRepo) scanOne(row *sql.Row) (*model.Store, error) {
	var s model.Store
	if err := row.Scan(&s.ID, &s.SellerID, &s.Name, &s.Slug, &s.ContactPhone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func slugKey(slug string) string { return "store:slug:" + slug }
