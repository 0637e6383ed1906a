package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokenService(t *testing.T, clock *fakeClock) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{
		SecretKey: "test-secret",
		Algorithm: "HS256",
		ExpiresIn: 30 * time.Minute,
		Now:       clock.Now,
	})
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return svc
}

func TestTokenIssueAndVerify(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue("great-scott@email.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	subject, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if subject != "great-scott@email.com" {
		t.Fatalf("unexpected subject: %s", subject)
	}
}

func TestTokenEmbedsExpiration(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, &fakeClock{now: issuedAt})

	token, err := svc.Issue("great-scott@email.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithoutClaimsValidation()); err != nil {
		t.Fatalf("failed to decode token: %v", err)
	}
	if claims.Subject != "great-scott@email.com" {
		t.Fatalf("unexpected sub: %s", claims.Subject)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.Equal(issuedAt.Add(30*time.Minute)) {
		t.Fatalf("unexpected exp: %v", claims.ExpiresAt)
	}
}

func TestTokenExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue("scott@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	for _, offset := range []time.Duration{0, time.Minute, 30*time.Minute - time.Second} {
		clock.now = issuedAt.Add(offset)
		if _, err := svc.Verify(token); err != nil {
			t.Fatalf("token should be valid at +%s: %v", offset, err)
		}
	}

	for _, offset := range []time.Duration{30 * time.Minute, 31 * time.Minute, 24 * time.Hour} {
		clock.now = issuedAt.Add(offset)
		if _, err := svc.Verify(token); !errors.Is(err, ErrExpiredToken) {
			t.Fatalf("token should be expired at +%s, got %v", offset, err)
		}
	}
}

func TestTokenVerifyRejectsInvalidTokens(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)

	valid, err := svc.Issue("scott@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	other, err := NewTokenService(TokenConfig{
		SecretKey: "another-secret",
		Algorithm: "HS256",
		ExpiresIn: time.Minute,
		Now:       clock.Now,
	})
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	foreign, err := other.Issue("scott@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "scott@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	cases := map[string]string{
		"empty":       "",
		"blank":       "   ",
		"garbage":     "not-a-token",
		"foreign key": foreign,
		"alg none":    unsigned,
		"no subject":  noSubject,
		"tampered":    tampered,
	}
	for name, token := range cases {
		if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestTokenVerifyRejectsOtherHMACAlgorithm(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "scott@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestNewTokenServiceValidatesConfig(t *testing.T) {
	cases := map[string]TokenConfig{
		"secret":    {Algorithm: "HS256", ExpiresIn: time.Minute},
		"algorithm": {SecretKey: "s", Algorithm: "RS256", ExpiresIn: time.Minute},
		"unknown":   {SecretKey: "s", Algorithm: "XX", ExpiresIn: time.Minute},
		"lifetime":  {SecretKey: "s", Algorithm: "HS256"},
	}
	for name, cfg := range cases {
		if _, err := NewTokenService(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
