package apitest

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenMinterRoundTrip(t *testing.T) {
	m := newTokenMinter("test-key", time.Hour)

	raw, err := m.mint(42, "bill")
	if err != nil {
		t.Fatalf("mint() unexpected error: %v", err)
	}

	claims, err := m.verify(raw)
	if err != nil {
		t.Fatalf("verify() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("verify() UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "bill" || claims.Subject != "bill" {
		t.Errorf("verify() username = %q / sub = %q, want bill", claims.Username, claims.Subject)
	}
}

func TestTokenMinterRejects(t *testing.T) {
	m := newTokenMinter("right", time.Hour)

	good, _ := m.mint(1, "bill")
	otherKey, _ := newTokenMinter("wrong", time.Hour).mint(1, "bill")
	expired, _ := newTokenMinter("right", -time.Minute).mint(1, "bill")

	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, accountClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{fakeAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
	}).SignedString([]byte("right"))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, accountClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: fakeIssuer, Audience: jwt.ClaimStrings{fakeAudience}},
		UserID:           1,
	}).SignedString([]byte("right"))

	later := newTokenMinter("right", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	tests := []struct {
		name  string
		m     tokenMinter
		token string
	}{
		{"garbage", m, "not-a-valid-token"},
		{"other key", m, otherKey},
		{"expired", m, expired},
		{"foreign issuer", m, foreign},
		{"no expiry", m, noExpiry},
		{"clock past expiry", later, good},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.verify(tt.token); !errors.Is(err, errBadToken) {
				t.Errorf("verify() error = %v, want %v", err, errBadToken)
			}
		})
	}
}
