package ports

import (
	"user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/jwt"
)

type Session interface {
	Issue(u *user.User) (string, error)
	Verify(token string) (*jwt.Claims, error)
}
