package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-admin-api/internal/application/policy"
	"user-admin-api/internal/application/services"
	domain "user-admin-api/internal/domain/user"
	jwtSvc "user-admin-api/internal/infrastructure/jwt"
	"user-admin-api/internal/interface/api/rest/dto/user"
)

type FakeUserService struct {
	ResolveCallerFunc func(ctx context.Context, id domain.ID) (*domain.User, error)
	ListUsersFunc     func(ctx context.Context, caller *domain.User) (domain.Users, error)
	CreateUserFunc    func(ctx context.Context, caller *domain.User, in domain.Registration) (*domain.User, error)
	UpdateUserFunc    func(ctx context.Context, caller *domain.User, id domain.ID, p domain.Profile) error
	DeleteUserFunc    func(ctx context.Context, caller *domain.User, id domain.ID) error
	PingFunc          func(ctx context.Context) error
}

func (f *FakeUserService) ResolveCaller(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.ResolveCallerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ResolveCallerFunc(ctx, id)
}
func (f *FakeUserService) ListUsers(ctx context.Context, caller *domain.User) (domain.Users, error) {
	if f.ListUsersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListUsersFunc(ctx, caller)
}
func (f *FakeUserService) CreateUser(ctx context.Context, caller *domain.User, in domain.Registration) (*domain.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, caller, in)
}
func (f *FakeUserService) UpdateUser(ctx context.Context, caller *domain.User, id domain.ID, p domain.Profile) error {
	if f.UpdateUserFunc == nil {
		return errors.New("not used")
	}
	return f.UpdateUserFunc(ctx, caller, id, p)
}
func (f *FakeUserService) DeleteUser(ctx context.Context, caller *domain.User, id domain.ID) error {
	if f.DeleteUserFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteUserFunc(ctx, caller, id)
}
func (f *FakeUserService) Ping(ctx context.Context) error {
	if f.PingFunc == nil {
		return errors.New("not used")
	}
	return f.PingFunc(ctx)
}

var callers = map[domain.ID]*domain.User{
	1: {ID: 1, Username: "admin", IsActive: true, Role: domain.RoleSuperadmin},
	2: {ID: 2, Username: "johndoe", IsActive: true, Role: domain.RoleUser},
	4: {ID: 4, Username: "moderator", IsActive: true, Role: domain.RoleAdmin},
}

func resolveFromFixtures(_ context.Context, id domain.ID) (*domain.User, error) {
	if u, ok := callers[id]; ok {
		return u, nil
	}
	return nil, policy.ErrUnauthenticated
}

func setupRouter(t *testing.T, us *FakeUserService) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if us.ResolveCallerFunc == nil {
		us.ResolveCallerFunc = resolveFromFixtures
	}
	r := gin.New()
	j := jwtSvc.New("test-secret")
	NewUserController(r, us, zap.NewNop(), j)

	return r, j
}

func bearer(t *testing.T, j *jwtSvc.Service, id domain.ID) map[string]string {
	t.Helper()
	token, err := j.Issue(callers[id])
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func validCreateRequest() user.CreateRequest {
	return user.CreateRequest{
		Username:  "newuser",
		Password:  "secret123",
		FirstName: "New",
		LastName:  "User",
		Email:     "new@example.com",
	}
}

func TestUserController_GetUsersHandler(t *testing.T) {
	hash := "$2a$10$abcdefghijklmnopqrstuuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ01"
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		caller     domain.ID
		listErr    error
		wantStatus int
		wantMsg    string
	}{
		{name: "401 without token", wantStatus: http.StatusUnauthorized, wantMsg: "Access token required"},
		{name: "403 for plain user", caller: 2, listErr: policy.ErrForbidden, wantStatus: http.StatusForbidden, wantMsg: "Permission denied: Admins only"},
		{name: "500 when service fails", caller: 1, listErr: errors.New("db error"), wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
		{name: "200 success", caller: 1, wantStatus: http.StatusOK, wantMsg: "Users retrieved successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{
				ListUsersFunc: func(_ context.Context, caller *domain.User) (domain.Users, error) {
					require.NotNil(t, caller)
					if tt.listErr != nil {
						return nil, tt.listErr
					}
					return domain.Users{{ID: 3, Username: "janedoe", PasswordHash: hash, IsActive: true, Role: domain.RoleUser, CreatedAt: created}}, nil
				},
			}
			r, j := setupRouter(t, us)

			var headers map[string]string
			if tt.caller != 0 {
				headers = bearer(t, j, tt.caller)
			}
			rr := doReq(t, r, http.MethodGet, RouteUsers, nil, headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			resp := decode(t, rr)
			assert.Equal(t, tt.wantMsg, resp["message"])
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "db error", resp["error"])
			}
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "OK", resp["status"])
				assert.NotContains(t, rr.Body.String(), hash)
				assert.NotContains(t, rr.Body.String(), "password")
				users := resp["users"].([]any)
				require.Len(t, users, 1)
				assert.Equal(t, "janedoe", users[0].(map[string]any)["username"])
			}
		})
	}
}

func TestUserController_CreateUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		caller     domain.ID
		body       any
		createErr  error
		wantStatus int
		wantMsg    string
		wantRole   domain.Role
	}{
		{name: "201 bootstrap without token", body: validCreateRequest(), wantStatus: http.StatusCreated, wantRole: domain.RoleUser},
		{name: "201 superadmin creates admin", caller: 1, body: func() user.CreateRequest {
			r := validCreateRequest()
			r.IsAdmin = true
			return r
		}(), wantStatus: http.StatusCreated, wantRole: domain.RoleAdmin},
		{name: "400 invalid json", caller: 1, body: "{bad json", wantStatus: http.StatusBadRequest, wantMsg: "Invalid JSON body"},
		{name: "400 missing fields", caller: 1, body: user.CreateRequest{Username: "x"}, wantStatus: http.StatusBadRequest, wantMsg: "Invalid request body"},
		{name: "401 guest after bootstrap", body: validCreateRequest(), createErr: policy.ErrUnauthenticated, wantStatus: http.StatusUnauthorized, wantRole: domain.RoleUser},
		{name: "403 non-admin asks for admin", caller: 2, body: func() user.CreateRequest {
			r := validCreateRequest()
			r.IsAdmin = true
			return r
		}(), createErr: policy.ErrForbidden, wantStatus: http.StatusForbidden, wantRole: domain.RoleAdmin},
		{name: "403 admin asks for admin", caller: 4, body: func() user.CreateRequest {
			r := validCreateRequest()
			r.IsAdmin = true
			return r
		}(), createErr: policy.ErrGrantRequiresSuperadmin, wantStatus: http.StatusForbidden,
			wantMsg: "Only superadmins can create other admins/superadmins", wantRole: domain.RoleAdmin},
		{name: "409 duplicate", caller: 1, body: validCreateRequest(), createErr: services.ErrUsernameOrEmailTaken, wantStatus: http.StatusConflict, wantRole: domain.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{
				CreateUserFunc: func(_ context.Context, caller *domain.User, in domain.Registration) (*domain.User, error) {
					if tt.caller == 0 {
						assert.Nil(t, caller)
					} else {
						assert.Equal(t, tt.caller, caller.ID)
					}
					assert.Equal(t, tt.wantRole, in.Role)
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &domain.User{ID: 10, Username: in.Username, Role: in.Role}, nil
				},
			}
			r, j := setupRouter(t, us)

			var headers map[string]string
			if tt.caller != 0 {
				headers = bearer(t, j, tt.caller)
			}
			rr := doReq(t, r, http.MethodPost, RouteUsers, tt.body, headers)
			require.Equal(t, tt.wantStatus, rr.Code)

			resp := decode(t, rr)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, map[string]any{"status": "OK", "message": "User created successfully"}, resp)
				return
			}
			assert.Equal(t, "ERROR", resp["status"])
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp["message"])
			}
		})
	}
}

func TestUserController_UpdateUserHandler(t *testing.T) {
	body := user.UpdateRequest{FirstName: "Jane", LastName: "Doe", Username: "jane.doe"}

	tests := []struct {
		name       string
		caller     domain.ID
		path       string
		body       any
		updateErr  error
		wantStatus int
	}{
		{name: "200 admin edits", caller: 4, path: "/api/users/3", body: body, wantStatus: http.StatusOK},
		{name: "400 bad id", caller: 4, path: "/api/users/abc", body: body, wantStatus: http.StatusBadRequest},
		{name: "400 missing username", caller: 4, path: "/api/users/3", body: user.UpdateRequest{FirstName: "Jane"}, wantStatus: http.StatusBadRequest},
		{name: "401 no token", path: "/api/users/3", body: body, wantStatus: http.StatusUnauthorized},
		{name: "403 plain user", caller: 2, path: "/api/users/3", body: body, updateErr: policy.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "404 unknown id", caller: 4, path: "/api/users/99", body: body, updateErr: services.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "409 username taken", caller: 4, path: "/api/users/3", body: body, updateErr: services.ErrUsernameOrEmailTaken, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{
				UpdateUserFunc: func(_ context.Context, caller *domain.User, id domain.ID, p domain.Profile) error {
					assert.Equal(t, "jane.doe", p.Username)
					return tt.updateErr
				},
			}
			r, j := setupRouter(t, us)

			var headers map[string]string
			if tt.caller != 0 {
				headers = bearer(t, j, tt.caller)
			}
			rr := doReq(t, r, http.MethodPut, tt.path, tt.body, headers)
			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "User updated successfully", decode(t, rr)["message"])
			}
		})
	}
}

func TestUserController_DeleteUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		caller     domain.ID
		path       string
		deleteErr  error
		wantStatus int
	}{
		{name: "200 soft delete", caller: 1, path: "/api/users/3", wantStatus: http.StatusOK},
		{name: "400 bad id", caller: 1, path: "/api/users/0", wantStatus: http.StatusBadRequest},
		{name: "403 plain user", caller: 2, path: "/api/users/3", deleteErr: policy.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "404 already deleted", caller: 1, path: "/api/users/3", deleteErr: services.ErrUserNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &FakeUserService{
				DeleteUserFunc: func(_ context.Context, _ *domain.User, id domain.ID) error {
					assert.Equal(t, domain.ID(3), id)
					return tt.deleteErr
				},
			}
			r, j := setupRouter(t, us)

			rr := doReq(t, r, http.MethodDelete, tt.path, nil, bearer(t, j, tt.caller))
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestUserController_ExpiredToken(t *testing.T) {
	us := &FakeUserService{}
	r, _ := setupRouter(t, us)

	old := jwtSvc.New("test-secret", jwtSvc.WithClock(func() time.Time { return time.Now().Add(-time.Hour - time.Second) }))
	token, err := old.Issue(callers[1])
	require.NoError(t, err)

	rr := doReq(t, r, http.MethodGet, RouteUsers, nil, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Token expired", decode(t, rr)["message"])
}
