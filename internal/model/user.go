package model

import "time"

// User represents a seller or administrator account as stored in the
// `users` table.  Accounts are keyed by phone number rather than email:
// sellers sign up with a phone and a 4‑digit PIN, and the PIN is stored
// only as a bcrypt hash.  Handlers define their own response types, so no
// json tags appear here.
//
// Fields:
//  ID        – primary key identifier of the account.
//  Phone     – unique phone number, digits only, as normalized at sign‑up.
//  PINHash   – bcrypt hash of the 4‑digit PIN.
//  Role      – role name (SELLER or ADMIN).
//  IsActive  – whether the account is active.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type User struct {
	ID        uint64    // users.id
	Phone     string    // users.phone
	PINHash   string    // users.pin_hash
	Role      string    // users.role
	IsActive  bool      // users.is_active
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA‑256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
