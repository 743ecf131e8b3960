package ports

import (
	"context"

	"user-admin-api/internal/domain/user"
)

// UserService methods take the resolved caller; a nil caller is a guest.
type UserService interface {
	ResolveCaller(ctx context.Context, id user.ID) (*user.User, error)
	ListUsers(ctx context.Context, caller *user.User) (user.Users, error)
	CreateUser(ctx context.Context, caller *user.User, in user.Registration) (*user.User, error)
	UpdateUser(ctx context.Context, caller *user.User, id user.ID, p user.Profile) error
	DeleteUser(ctx context.Context, caller *user.User, id user.ID) error
	Ping(ctx context.Context) error
}
