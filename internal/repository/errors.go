// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto HTTP status codes without inspecting driver error strings
// themselves.
package repository

import "errors"

// ErrStoreNotFound is returned when no store matches the lookup, whether
// by seller, ID or slug.  The public resolver also returns it for stores
// that exist but are deactivated, so the two cases are indistinguishable
// to anonymous visitors.
var ErrStoreNotFound = errors.New("store not found")

// ErrStoreExists is returned when a seller who already owns a store
// attempts to create another one.
var ErrStoreExists = errors.New("store already exists for seller")

// ErrSlugTaken is returned when the slug derived from a store name
// collides with an existing store's slug.
var ErrSlugTaken = errors.New("store name already taken")

// ErrProductNotFound is returned when a product does not exist or does
// not belong to the caller's store.
var ErrProductNotFound = errors.New("product not found")

// ErrPhoneExists is returned when an account with the given phone number
// already exists.
var ErrPhoneExists = errors.New("phone already registered")

// ErrVerificationNotFound is returned when no pending verification exists
// for a phone number, typically because the code expired.
var ErrVerificationNotFound = errors.New("verification not found or expired")

// ErrCodeMismatch is returned when the submitted verification code does
// not match the one issued for the phone number.
var ErrCodeMismatch = errors.New("verification code mismatch")
