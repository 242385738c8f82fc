package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sellerapp/storefront-api/internal/model"
)

// UserRepo encapsulates queries against the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts an account and returns its ID.  The phone must already be
// normalized to digits and the PIN already hashed; both happen during the
// register/verify flow before this call.
func (r *UserRepo) Create(ctx context.Context, phone, pinHash, role string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (phone, pin_hash, role) VALUES (?,?,?)",
		phone, pinHash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrPhoneExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByPhone fetches a user by normalized phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,phone,pin_hash,role,is_active,created_at,updated_at FROM users WHERE phone=? LIMIT 1",
		phone).Scan(&u.ID, &u.Phone, &u.PINHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,phone,pin_hash,role,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Phone, &u.PINHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
