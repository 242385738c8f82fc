package repository

import (
	"context"
	"database/sql"

	"github.com/sellerapp/storefront-api/internal/model"
)

// VisitRepo appends storefront view events to the `store_visits` table.
// Rows are written by the background queue consumer, never by request
// handlers, and are only ever read in aggregate by the admin listing.
type VisitRepo struct {
	db *sql.DB
}

func NewVisitRepo(db *sql.DB) *VisitRepo { return &VisitRepo{db: db} }

// Record appends one visit row.  The visit time comes from the event so
// that broker redelivery delays do not skew the analytics windows.
func (r *VisitRepo) Record(ctx context.Context, v model.StoreVisit) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO store_visits (store_id, created_at) VALUES (?, ?)",
		v.StoreID, v.CreatedAt)
	return err
}
