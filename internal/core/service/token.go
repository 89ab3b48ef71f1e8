package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/platformlab/accounts-api/internal/core/domain"
	"github.com/platformlab/accounts-api/internal/core/ports"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type tokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens. The signing secret
// and lifetime are fixed at construction and never change afterwards.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the principal id and role plus issued-at and
// expiry claims.
func (m *TokenManager) Issue(id, role string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry and returns the decoded claims. Every
// failure mode collapses into domain.ErrInvalidToken; callers cannot tell a
// forged token from an expired one.
func (m *TokenManager) Verify(token string) (ports.TokenClaims, error) {
	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	if claims.ID == "" {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	return ports.TokenClaims{ID: claims.ID, Role: claims.Role}, nil
}
