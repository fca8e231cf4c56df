// Package auth mints and parses session tokens and derives password hashes.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when the configured lifetime is not positive.
const DefaultTokenTTL = 12 * time.Hour

// Claims carries the subject (account id), issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Tokens mints and parses HS256 session tokens with a single signing secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for minting and expiry checks.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	t.now = now
	return t
}

// TTL reports the lifetime of minted tokens.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue mints a token for subject. Times are truncated to whole seconds,
// so the returned expiry is exactly the one embedded in the token.
func (t *Tokens) Issue(subject string) (string, time.Time, error) {
	now := t.now().Truncate(time.Second)
	exp := now.Add(t.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Parse checks structure, signature and expiry and returns the claims.
// A token is rejected once now reaches its expiry.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	if raw == "" {
		return nil, common.ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, common.ErrInvalidSignature
		}
		return nil, common.ErrMalformedToken
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, common.ErrMalformedToken
	}
	if !t.now().Before(claims.ExpiresAt.Time) {
		return nil, common.ErrTokenExpired
	}
	return claims, nil
}
