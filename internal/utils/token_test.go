package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "STAFF", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if !at.Exp.After(time.Now().UTC()) {
		t.Errorf("expiry %v not in the future", at.Exp)
	}

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse signed token: %v (valid=%v)", err, tok != nil && tok.Valid)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type %T", tok.Claims)
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "STAFF" {
		t.Errorf("role = %v, want STAFF", claims["role"])
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "CUSTOMER", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	if err == nil && tok.Valid {
		t.Error("token validated with the wrong secret")
	}
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() error = %v", err)
	}
	if len(rt.Raw) != 96 { // 48 random bytes hex-encoded
		t.Errorf("raw length = %d, want 96", len(rt.Raw))
	}
	if !rt.Exp.After(time.Now().UTC().Add(29 * 24 * time.Hour)) {
		t.Errorf("expiry %v sooner than expected", rt.Exp)
	}

	other, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() error = %v", err)
	}
	if rt.Raw == other.Raw {
		t.Error("two refresh tokens share the same raw value")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("token-a")
	h2 := HashRefreshRaw("token-a")
	h3 := HashRefreshRaw("token-b")
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if h1 == h3 {
		t.Error("distinct tokens hash identically")
	}
	if len(h1) != 64 { // sha256 hex
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordOutOfRangeCost(t *testing.T) {
	// A misconfigured cost falls back to the bcrypt default instead
	// of erroring out of registration.
	hash, err := HashPassword("s3cret", 0)
	if err != nil {
		t.Fatalf("HashPassword(cost=0) error = %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("hash from fallback cost does not verify")
	}
	if cost, err := bcrypt.Cost([]byte(hash)); err != nil || cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d (err %v), want %d", cost, err, bcrypt.DefaultCost)
	}
}
