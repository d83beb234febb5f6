// Package auth resolves who is calling: bearer tokens, password hashes and
// the identity attached to a request context.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	svcErr "github.com/oggyb/skillswap/internal/errors"
)

// Identity is the signed-in user. ID is also the profile id.
type Identity struct {
	ID    string
	Email string
}

type ctxKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller's identity, or Unauthenticated when the
// request was not signed in.
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.ID == "" {
		return Identity{}, svcErr.Unauthenticated("sign in required")
	}
	return id, nil
}

const minPasswordLen = 8

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", svcErr.Validation("password must be at least %d characters", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", svcErr.Validation("password cannot be hashed: %v", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
