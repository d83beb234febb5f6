package auth

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	svcErr "github.com/oggyb/skillswap/internal/errors"
)

// Claims carried by a bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`

	jwtlib.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager panics on an empty secret or a non-positive ttl; both are
// startup misconfigurations.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if secret == "" {
		panic("auth: empty token secret")
	}
	if ttl <= 0 {
		panic("auth: token ttl must be positive")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is how long an issued token stays valid.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for id.
func (m *TokenManager) Issue(id Identity) (string, time.Time, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)

	c := Claims{
		UserID: id.ID,
		Email:  id.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses a token and returns the identity it names. Every failure is
// an Unauthenticated error.
func (m *TokenManager) Verify(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, svcErr.Unauthenticated("missing bearer token")
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(m.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Identity{}, svcErr.Unauthenticated("session expired, sign in again")
		}
		return Identity{}, svcErr.Unauthenticated("invalid bearer token")
	}
	if tok == nil || !tok.Valid || c.UserID == "" {
		return Identity{}, svcErr.Unauthenticated("invalid bearer token")
	}

	return Identity{ID: c.UserID, Email: c.Email}, nil
}
