package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure mode of Verify. Tampered signatures,
// expired claims and malformed tokens all collapse into it so callers cannot
// distinguish why a credential was rejected.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is the token lifetime used when the caller supplies none.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenManager issues and verifies signed identity tokens. It is purely
// functional over the secret injected at construction; tokens are stateless
// and cannot be revoked before expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the subject with the configured default lifetime.
func (m *TokenManager) Issue(subject string) (string, time.Time, error) {
	return m.IssueWithTTL(subject, m.ttl)
}

// IssueWithTTL signs a token for the subject that expires after ttl.
func (m *TokenManager) IssueWithTTL(subject string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Verify validates the signature and expiry and returns the subject claim.
// Every failure surfaces as ErrInvalidToken.
func (m *TokenManager) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
