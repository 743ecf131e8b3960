package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/db/sqlite"
)

type Repository struct {
	db      *sqlx.DB
	timeout time.Duration
	now     func() time.Time
}

func NewRepository(db *sqlx.DB, timeout time.Duration) *Repository {
	return &Repository{
		db:      db,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Repository) fetchOne(ctx context.Context, q sqlx.QueryerContext, query string, arg any) (*user.User, error) {
	u := new(User)
	if err := sqlx.GetContext(ctx, q, u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.fetchOne(ctx, r.db, SelectUserByUsername, username)
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.fetchOne(ctx, r.db, SelectUserByID, int64(id))
}

func (r *Repository) FetchActiveUsers(ctx context.Context) (user.Users, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var us Users
	if err := r.db.SelectContext(ctx, &us, SelectActiveUsers); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User, decide user.RoleDecider) (_ *user.User, err error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// _txlock=immediate: the write lock is taken before the count is read.
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing int64
	if err = tx.GetContext(ctx, &existing, CountUsers); err != nil {
		return nil, err
	}
	role, err := decide(existing)
	if err != nil {
		return nil, err
	}
	isAdmin, isSuperadmin := role.Flags()

	now := r.now()
	res, err := tx.ExecContext(ctx, InsertUser,
		req.Username, req.Email, req.PasswordHash, req.FirstName, req.LastName,
		isAdmin, isSuperadmin, now, now,
	)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			err = user.ErrDuplicateKey
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	u, err := r.fetchOne(ctx, tx, SelectUserByID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		err = fmt.Errorf("inserted user %d not readable", id)
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return u, nil
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return false, user.ErrDuplicateKey
		}
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, id user.ID, p user.Profile) (bool, error) {
	return r.exec(ctx, UpdateProfileByID, p.FirstName, p.LastName, p.Username, r.now(), int64(id))
}

func (r *Repository) SoftDelete(ctx context.Context, id user.ID) (bool, error) {
	now := r.now()
	return r.exec(ctx, SoftDeleteUserByID, now, now, int64(id))
}

func (r *Repository) TouchLastLogin(ctx context.Context, id user.ID, at time.Time) error {
	at = at.UTC()
	_, err := r.exec(ctx, TouchLastLoginByID, at, at, int64(id))
	return err
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := r.db.GetContext(ctx, &n, CountUsers); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.PingContext(ctx)
}
