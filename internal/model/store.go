package model

import "time"

// Store represents a seller's storefront as stored in the `stores` table.
// Each seller owns exactly one store (seller_id carries a UNIQUE index) and
// each store is reachable publicly through its slug, which is derived from
// the display name at onboarding and never changes afterwards.  The slug
// column also carries a UNIQUE index so that two sellers cannot claim the
// same store name spelled differently only in case or spacing.
//
// Fields:
//  ID           – primary key identifier.
//  SellerID     – user ID of the owning seller (unique, one store per seller).
//  Name         – display name shown on the storefront.
//  Slug         – URL slug derived from Name (lowercase, hyphenated).
//  ContactPhone – phone customers use to reach the seller.
//  IsActive     – whether the storefront is publicly visible.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Store struct {
	ID           uint64    // stores.id
	SellerID     uint64    // stores.seller_id
	Name         string    // stores.name
	Slug         string    // stores.slug
	ContactPhone string    // stores.contact_phone
	IsActive     bool      // stores.is_active
	CreatedAt    time.Time // stores.created_at
	UpdatedAt    time.Time // stores.updated_at
}
