package ports

import (
	"context"

	"user-admin-api/internal/domain/user"
)

type Auth interface {
	Login(ctx context.Context, username, password string) (string, *user.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
	// Burn spends the same time as Verify without a stored hash.
	Burn(plain string)
}
