package apitest

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	fakeIssuer   = "jobtrack-apitest"
	fakeAudience = "jobtrack"
)

var errBadToken = errors.New("bad bearer token")

// accountClaims is the payload of every token the fake backend hands out.
// The client shows "username" (falling back to "sub") as the logged-in user.
type accountClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// tokenMinter signs and checks HS256 tokens for one fake server.
type tokenMinter struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func newTokenMinter(key string, ttl time.Duration) tokenMinter {
	return tokenMinter{key: []byte(key), ttl: ttl, now: time.Now}
}

func (m tokenMinter) mint(userID int64, username string) (string, error) {
	iat := m.now()
	claims := accountClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    fakeIssuer,
			Subject:   username,
			Audience:  jwt.ClaimStrings{fakeAudience},
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(m.ttl)),
		},
		UserID:   userID,
		Username: username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// verify accepts only unexpired tokens minted with the same key.
func (m tokenMinter) verify(raw string) (*accountClaims, error) {
	var claims accountClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(fakeIssuer),
		jwt.WithAudience(fakeAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadToken, err)
	}
	return &claims, nil
}
