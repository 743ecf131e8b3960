package user

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateKey is returned by a Repository when a write would break the
// username or email uniqueness constraint.
var ErrDuplicateKey = errors.New("duplicate username or email")

// RoleDecider is called inside the insert transaction with the number of rows
// ever stored (soft-deleted included). It returns the role to persist or an
// error that aborts the insert.
type RoleDecider func(existing int64) (Role, error)

type Repository interface {
	FetchUserByUsername(ctx context.Context, username string) (*User, error)
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchActiveUsers(ctx context.Context) (Users, error)
	CreateUser(ctx context.Context, req User, decide RoleDecider) (*User, error)
	UpdateProfile(ctx context.Context, id ID, p Profile) (bool, error)
	SoftDelete(ctx context.Context, id ID) (bool, error)
	TouchLastLogin(ctx context.Context, id ID, at time.Time) error
	CountUsers(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
