package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// ErrSigningKeyMissing is returned when the issuer was built without key
// material. Issuance is fatal to the request in that case, never silent.
var ErrSigningKeyMissing = errors.New("token issuer: signing key not configured")

// TokenIssuer mints signed, time-bound session tokens. The signing secret is
// injected at construction rather than read from ambient state, so tests can
// swap keys freely.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer for the given HS256 secret. A non-positive
// ttl falls back to seven days.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token asserting the account's identity and role.
// There is no revocation: the exp claim is the only built-in bound.
func (i *TokenIssuer) Issue(userID, role string) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrSigningKeyMissing
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}
