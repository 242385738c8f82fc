package model

import "time"

// StoreVisit is one append-only row in the `store_visits` table, written
// whenever an anonymous visitor resolves a storefront.  Rows are never
// updated or deleted; the admin console aggregates them into weekly and
// monthly counts.
type StoreVisit struct {
	ID        uint64    // store_visits.id
	StoreID   uint64    // store_visits.store_id
	CreatedAt time.Time // store_visits.created_at
}
