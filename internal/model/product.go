package model

import "time"

// Product represents a catalog entry belonging to a single store, as
// stored in the `products` table.  A store holds at most 12 products and a
// product holds at most 3 image URLs; both caps are enforced by the seller
// handlers before any write.  Prices are stored in cents to avoid float
// rounding, and images are persisted as a JSON array in a single column.
//
// Fields:
//  ID          – primary key identifier.
//  StoreID     – store to which the product belongs.
//  Name        – product name.
//  Description – product description.
//  PriceCents  – price in cents (non‑negative).
//  Images      – ordered list of 0–3 public image URLs.
//  CreatedAt   – creation timestamp.
type Product struct {
	ID          uint64    // products.id
	StoreID     uint64    // products.store_id
	Name        string    // products.name
	Description string    // products.description
	PriceCents  uint64    // products.price_cents
	Images      []string  // products.images (JSON array column)
	CreatedAt   time.Time // products.created_at
}

// MaxProductsPerStore caps how many products a single store may list.
const MaxProductsPerStore = 12

// MaxImagesPerProduct caps how many image URLs a product may carry.
const MaxImagesPerProduct = 3
