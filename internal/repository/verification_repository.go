// This file defines the pending-registration store backed by Redis.  A
// sign-up is held here (phone, hashed PIN, 6-digit code) until the caller
// proves ownership of the phone number; entries expire on their own after
// the TTL, so abandoned registrations never reach MySQL.
package repository

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// verificationTTL is how long a verification code stays valid.
const verificationTTL = 10 * time.Minute

// ErrVerificationUnavailable is returned when Redis is not reachable, in
// which case sign-ups cannot proceed.
var ErrVerificationUnavailable = errors.New("verification store unavailable")

// VerificationRepo keeps pending registrations in Redis keyed by phone.
type VerificationRepo struct {
	rdb *redis.Client
}

func NewVerificationRepo(rdb *redis.Client) *VerificationRepo {
	return &VerificationRepo{rdb: rdb}
}

type pendingRegistration struct {
	PINHash string `json:"pin_hash"`
	Code    string `json:"code"`
}

// CreatePending stores a pending registration and returns the generated
// 6-digit verification code.  A repeat call for the same phone overwrites
// the previous entry and issues a fresh code.
func (r *VerificationRepo) CreatePending(ctx context.Context, phone, pinHash string) (string, error) {
	if r.rdb == nil {
		return "", ErrVerificationUnavailable
	}
	code, err := randomCode()
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(pendingRegistration{PINHash: pinHash, Code: code})
	if err != nil {
		return "", err
	}
	if err := r.rdb.Set(ctx, verifyKey(phone), raw, verificationTTL).Err(); err != nil {
		return "", ErrVerificationUnavailable
	}
	return code, nil
}

// Consume validates the code for a phone and, on success, deletes the
// pending entry and returns the stored PIN hash.  A wrong code leaves the
// entry in place so the caller may retry until the TTL runs out.
func (r *VerificationRepo) Consume(ctx context.Context, phone, code string) (string, error) {
	if r.rdb == nil {
		return "", ErrVerificationUnavailable
	}
	raw, err := r.rdb.Get(ctx, verifyKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrVerificationNotFound
		}
		return "", ErrVerificationUnavailable
	}
	var pending pendingRegistration
	if err := json.Unmarshal(raw, &pending); err != nil {
		return "", ErrVerificationNotFound
	}
	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(code)) != 1 {
		return "", ErrCodeMismatch
	}
	_ = r.rdb.Del(ctx, verifyKey(phone)).Err()
	return pending.PINHash, nil
}

func verifyKey(phone string) string { return "verify:phone:" + phone }

// randomCode returns a 6-digit numeric code from crypto/rand.
func randomCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 6)
	for i, b := range buf {
		out[i] = '0' + b%10
	}
	return string(out), nil
}
