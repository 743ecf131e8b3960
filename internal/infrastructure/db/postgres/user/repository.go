package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/db/postgres"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Repository struct {
	db      DB
	timeout time.Duration
}

func NewRepository(db DB, timeout time.Duration) *Repository {
	return &Repository{db: db, timeout: timeout}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*user.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u := new(User)
	if err := r.db.QueryRow(ctx, query, arg).Scan(u.scanDest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByUsername, username)
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, int64(id))
}

func (r *Repository) FetchActiveUsers(ctx context.Context) (user.Users, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, SelectActiveUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(u.scanDest()...); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User, decide user.RoleDecider) (_ *user.User, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, LockUsers); err != nil {
		return nil, fmt.Errorf("lock users: %w", err)
	}
	var existing int64
	if err = tx.QueryRow(ctx, CountUsers).Scan(&existing); err != nil {
		return nil, err
	}
	role, err := decide(existing)
	if err != nil {
		return nil, err
	}
	isAdmin, isSuperadmin := role.Flags()

	u := new(User)
	if err = tx.QueryRow(ctx, InsertUser,
		req.Username, req.Email, req.PasswordHash, req.FirstName, req.LastName, isAdmin, isSuperadmin,
	).Scan(u.scanDest()...); err != nil {
		if postgres.IsPgUniqueViolation(err) {
			err = user.ErrDuplicateKey
		}
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return false, user.ErrDuplicateKey
		}
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, id user.ID, p user.Profile) (bool, error) {
	return r.exec(ctx, UpdateProfileByID, p.FirstName, p.LastName, p.Username, int64(id))
}

func (r *Repository) SoftDelete(ctx context.Context, id user.ID) (bool, error) {
	return r.exec(ctx, SoftDeleteUserByID, int64(id))
}

func (r *Repository) TouchLastLogin(ctx context.Context, id user.ID, at time.Time) error {
	_, err := r.exec(ctx, TouchLastLoginByID, at, int64(id))
	return err
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := r.db.QueryRow(ctx, CountUsers).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.Ping(ctx)
}
