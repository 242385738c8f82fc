package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "SELLER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if time.Until(at.Exp) <= 0 {
		t.Error("token already expired at issue time")
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse signed token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims not MapClaims")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if claims["role"] != "SELLER" {
		t.Errorf("role = %v, want SELLER", claims["role"])
	}
}

func TestNewAccessTokenWrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "SELLER", 15)
	if err != nil {
		t.Fatal(err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil && tok.Valid {
		t.Error("token verified under the wrong secret")
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	r1, err := NewRefreshToken(30)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := NewRefreshToken(30)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Raw == r2.Raw {
		t.Error("two refresh tokens share the same raw value")
	}
	if HashRefreshRaw(r1.Raw) != HashRefreshRaw(r1.Raw) {
		t.Error("hash not deterministic")
	}
	if HashRefreshRaw(r1.Raw) == HashRefreshRaw(r2.Raw) {
		t.Error("distinct tokens hash equal")
	}
	if HashRefreshRaw(r1.Raw) == r1.Raw {
		t.Error("stored value must be the hash, not the raw token")
	}
}
