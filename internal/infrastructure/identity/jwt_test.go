package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fundbridge/platform/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "user-1", Email: "alice@example.com", Role: domain.RoleAdmin}
}

func TestJWTProvider_RoundTrip(t *testing.T) {
	p := NewJWTProvider("secret", "fundbridge", time.Hour)

	token, exp, err := p.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry should be in the future")
	}

	id, err := p.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.Subject != "user-1" || id.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.Claims["role"] != "admin" {
		t.Fatalf("role claim missing: %+v", id.Claims)
	}
}

func TestJWTProvider_DefaultTTLIsOneYear(t *testing.T) {
	p := NewJWTProvider("secret", "", 0)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	_, exp, err := p.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(fixed.Add(365 * 24 * time.Hour)) {
		t.Fatalf("unexpected expiry %v", exp)
	}
}

func TestJWTProvider_EmptyToken(t *testing.T) {
	p := NewJWTProvider("secret", "", time.Hour)
	if _, err := p.Verify(context.Background(), "  "); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestJWTProvider_Rejections(t *testing.T) {
	p := NewJWTProvider("secret", "fundbridge", time.Hour)
	good, _, err := p.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	expired := NewJWTProvider("secret", "fundbridge", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, _ := expired.Issue(testUser())

	otherIssuer, _, _ := NewJWTProvider("secret", "someone-else", time.Hour).Issue(testUser())
	otherSecret, _, _ := NewJWTProvider("different", "fundbridge", time.Hour).Issue(testUser())

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1", Issuer: "fundbridge",
	}).SignedString([]byte("secret"))

	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: "fundbridge", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "user-1", Issuer: "fundbridge", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"expired":      expiredToken,
		"wrong issuer": otherIssuer,
		"wrong secret": otherSecret,
		"no expiry":    noExp,
		"no subject":   noSubject,
		"alg none":     noneAlg,
		"tampered":     good + "x",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
