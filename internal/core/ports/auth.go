package ports

import (
	"context"

	"github.com/gregsyu/task-manager/internal/core/domain"
)

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches encoded. A malformed encoded
	// hash is a mismatch, never an error.
	Verify(password, encoded string) bool
}

// TokenService issues and verifies signed bearer tokens carrying a user id.
type TokenService interface {
	Issue(userID uint64) (string, error)
	// Verify returns the subject user id, or domain.ErrInvalidToken for any
	// failure (bad signature, expired, missing subject).
	Verify(token string) (uint64, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (string, error)
	// Authenticate resolves a bearer token to the user it was issued for.
	Authenticate(ctx context.Context, token string) (domain.User, error)
}
