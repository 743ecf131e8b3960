package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/db/sqlite"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := sqlite.New(context.Background(), zap.NewNop(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewRepository(db, 5*time.Second)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r.now = clock.now

	return r
}

func asIs(role user.Role) user.RoleDecider {
	return func(int64) (user.Role, error) { return role, nil }
}

func mustCreate(t *testing.T, r *Repository, username, email string, role user.Role) *user.User {
	t.Helper()
	u, err := r.CreateUser(context.Background(), user.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		FirstName:    "First",
		LastName:     "Last",
	}, asIs(role))
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func TestRepository_CreateUser_PassesRowCountToDecider(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	var seen []int64
	decide := func(existing int64) (user.Role, error) {
		seen = append(seen, existing)
		if existing == 0 {
			return user.RoleSuperadmin, nil
		}
		return user.RoleUser, nil
	}

	first, err := r.CreateUser(ctx, user.User{Username: "admin", Email: "admin@example.com", PasswordHash: "h"}, decide)
	require.NoError(t, err)
	second, err := r.CreateUser(ctx, user.User{Username: "johndoe", Email: "john@example.com", PasswordHash: "h"}, decide)
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1}, seen)
	assert.Equal(t, user.RoleSuperadmin, first.Role)
	assert.Equal(t, user.RoleUser, second.Role)
	assert.True(t, first.IsActive)
	assert.Nil(t, first.LastLogin)
	assert.Nil(t, first.DeletedAt)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Greater(t, int64(second.ID), int64(first.ID))
}

func TestRepository_CreateUser_DeciderErrorAborts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	denied := errors.New("denied")

	_, err := r.CreateUser(ctx, user.User{Username: "x", Email: "x@example.com", PasswordHash: "h"},
		func(int64) (user.Role, error) { return user.RoleGuest, denied })
	require.ErrorIs(t, err, denied)

	n, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_CreateUser_Duplicates(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	mustCreate(t, r, "johndoe", "john@example.com", user.RoleUser)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same username", "johndoe", "other@example.com"},
		{"same email", "other", "john@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.CreateUser(ctx, user.User{Username: tt.username, Email: tt.email, PasswordHash: "h"}, asIs(user.RoleUser))
			require.ErrorIs(t, err, user.ErrDuplicateKey)

			n, err := r.CountUsers(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})
	}
}

func TestRepository_SoftDeleteHidesUser(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	john := mustCreate(t, r, "johndoe", "john@example.com", user.RoleUser)
	mustCreate(t, r, "janedoe", "jane@example.com", user.RoleUser)

	ok, err := r.SoftDelete(ctx, john.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := r.FetchUserByUsername(ctx, "johndoe")
	require.NoError(t, err)
	assert.Nil(t, got)

	byID, err := r.FetchUserByID(ctx, john.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.True(t, byID.IsDeleted())

	list, err := r.FetchActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "janedoe", list[0].Username)

	again, err := r.SoftDelete(ctx, john.ID)
	require.NoError(t, err)
	assert.False(t, again, "deleted rows are never touched again")

	n, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "soft delete keeps the row")
}

func TestRepository_UsernameReusableAfterSoftDelete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	old := mustCreate(t, r, "johndoe", "john@example.com", user.RoleUser)

	_, err := r.SoftDelete(ctx, old.ID)
	require.NoError(t, err)

	fresh := mustCreate(t, r, "johndoe", "john@example.com", user.RoleUser)
	assert.NotEqual(t, old.ID, fresh.ID)
}

func TestRepository_FetchActiveUsers_NewestFirst(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	mustCreate(t, r, "a", "a@example.com", user.RoleUser)
	mustCreate(t, r, "b", "b@example.com", user.RoleUser)
	mustCreate(t, r, "c", "c@example.com", user.RoleAdmin)

	list, err := r.FetchActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].Username, list[1].Username, list[2].Username})
	assert.Equal(t, user.RoleAdmin, list[0].Role)
}

func TestRepository_UpdateProfile(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	john := mustCreate(t, r, "johndoe", "john@example.com", user.RoleUser)
	mustCreate(t, r, "janedoe", "jane@example.com", user.RoleUser)

	ok, err := r.UpdateProfile(ctx, john.ID, user.Profile{FirstName: "Johnny", LastName: "Doe", Username: "johnny"})
	require.NoError(t, err)
	require.True(t, ok)

	got, err := r.FetchUserByUsername(ctx, "johnny")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Johnny", got.FirstName)
	assert.True(t, got.UpdatedAt.After(john.UpdatedAt))

	_, err = r.UpdateProfile(ctx, john.ID, user.Profile{Username: "janedoe"})
	require.ErrorIs(t, err, user.ErrDuplicateKey)

	missing, err := r.UpdateProfile(ctx, 999, user.Profile{Username: "ghost"})
	require.NoError(t, err)
	assert.False(t, missing)
}

func TestRepository_TouchLastLogin(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	john := mustCreate(t, r, "johndoe", "john@example.com", user.RoleUser)

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.TouchLastLogin(ctx, john.ID, at))

	got, err := r.FetchUserByID(ctx, john.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(at))
	assert.True(t, got.UpdatedAt.Equal(at))
}

func TestRepository_Ping(t *testing.T) {
	require.NoError(t, newTestRepo(t).Ping(context.Background()))
}
