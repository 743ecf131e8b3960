package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/hasher"
	"user-admin-api/internal/infrastructure/mq"
)

type FakeRepository struct {
	FetchUserByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	FetchUserByIDFunc       func(ctx context.Context, id domain.ID) (*domain.User, error)
	FetchActiveUsersFunc    func(ctx context.Context) (domain.Users, error)
	CreateUserFunc          func(ctx context.Context, req domain.User, decide domain.RoleDecider) (*domain.User, error)
	UpdateProfileFunc       func(ctx context.Context, id domain.ID, p domain.Profile) (bool, error)
	SoftDeleteFunc          func(ctx context.Context, id domain.ID) (bool, error)
	TouchLastLoginFunc      func(ctx context.Context, id domain.ID, at time.Time) error
	CountUsersFunc          func(ctx context.Context) (int64, error)
	PingFunc                func(ctx context.Context) error
}

var errNotUsed = errors.New("not used")

func (f *FakeRepository) FetchUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.FetchUserByUsernameFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchUserByUsernameFunc(ctx, username)
}
func (f *FakeRepository) FetchUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.FetchUserByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchUserByIDFunc(ctx, id)
}
func (f *FakeRepository) FetchActiveUsers(ctx context.Context) (domain.Users, error) {
	if f.FetchActiveUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchActiveUsersFunc(ctx)
}
func (f *FakeRepository) CreateUser(ctx context.Context, req domain.User, decide domain.RoleDecider) (*domain.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateUserFunc(ctx, req, decide)
}
func (f *FakeRepository) UpdateProfile(ctx context.Context, id domain.ID, p domain.Profile) (bool, error) {
	if f.UpdateProfileFunc == nil {
		return false, errNotUsed
	}
	return f.UpdateProfileFunc(ctx, id, p)
}
func (f *FakeRepository) SoftDelete(ctx context.Context, id domain.ID) (bool, error) {
	if f.SoftDeleteFunc == nil {
		return false, errNotUsed
	}
	return f.SoftDeleteFunc(ctx, id)
}
func (f *FakeRepository) TouchLastLogin(ctx context.Context, id domain.ID, at time.Time) error {
	if f.TouchLastLoginFunc == nil {
		return errNotUsed
	}
	return f.TouchLastLoginFunc(ctx, id, at)
}
func (f *FakeRepository) CountUsers(ctx context.Context) (int64, error) {
	if f.CountUsersFunc == nil {
		return 0, errNotUsed
	}
	return f.CountUsersFunc(ctx)
}
func (f *FakeRepository) Ping(ctx context.Context) error {
	if f.PingFunc == nil {
		return errNotUsed
	}
	return f.PingFunc(ctx)
}

type FakePublisher struct {
	Events []mq.Event
}

func (f *FakePublisher) Publish(e mq.Event) { f.Events = append(f.Events, e) }

// memRepository is a tiny in-memory store for flows that chain several calls.
type memRepository struct {
	FakeRepository
	rows   []*domain.User
	nextID domain.ID
}

func newMemRepository() *memRepository {
	m := &memRepository{nextID: 1}
	m.CountUsersFunc = func(context.Context) (int64, error) { return int64(len(m.rows)), nil }
	m.CreateUserFunc = func(_ context.Context, req domain.User, decide domain.RoleDecider) (*domain.User, error) {
		for _, r := range m.rows {
			if !r.IsDeleted() && (r.Username == req.Username || r.Email == req.Email) {
				return nil, domain.ErrDuplicateKey
			}
		}
		role, err := decide(int64(len(m.rows)))
		if err != nil {
			return nil, err
		}
		u := req
		u.ID = m.nextID
		u.Role = role
		m.nextID++
		m.rows = append(m.rows, &u)
		cp := u
		return &cp, nil
	}
	m.FetchUserByIDFunc = func(_ context.Context, id domain.ID) (*domain.User, error) {
		for _, r := range m.rows {
			if r.ID == id {
				cp := *r
				return &cp, nil
			}
		}
		return nil, nil
	}
	m.FetchUserByUsernameFunc = func(_ context.Context, username string) (*domain.User, error) {
		for _, r := range m.rows {
			if r.Username == username && !r.IsDeleted() {
				cp := *r
				return &cp, nil
			}
		}
		return nil, nil
	}
	m.TouchLastLoginFunc = func(_ context.Context, id domain.ID, at time.Time) error {
		for _, r := range m.rows {
			if r.ID == id {
				r.LastLogin = &at
			}
		}
		return nil
	}
	return m
}

func testHasher() *hasher.Bcrypt { return hasher.NewWithCost(bcrypt.MinCost) }
