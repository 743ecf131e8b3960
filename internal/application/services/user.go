package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"user-admin-api/internal/application/policy"
	"user-admin-api/internal/application/ports"
	domain "user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/metrics"
	"user-admin-api/internal/infrastructure/mq"
	"user-admin-api/internal/interface/api/rest/dto/user"
)

type UserService struct {
	userRepository domain.Repository
	hasher         ports.PasswordHasher
	mq             ports.EventPublisher
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	hasher ports.PasswordHasher,
	mq ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func roleOf(caller *domain.User) domain.Role {
	if caller == nil {
		return domain.RoleGuest
	}
	return caller.Role
}

// ResolveCaller loads the account behind a verified token. The role always
// comes from the stored row so a revoked privilege applies immediately.
func (us *UserService) ResolveCaller(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch caller: %w", err)
	}
	if u == nil || !u.CanAuthenticate() {
		return nil, policy.ErrUnauthenticated
	}

	return u, nil
}

func (us *UserService) ListUsers(ctx context.Context, caller *domain.User) (domain.Users, error) {
	if err := policy.CanListUsers(roleOf(caller)); err != nil {
		return nil, err
	}

	users, err := us.userRepository.FetchActiveUsers(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (us *UserService) CreateUser(ctx context.Context, caller *domain.User, in domain.Registration) (*domain.User, error) {
	n, err := us.userRepository.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	// rejected callers never pay for a bcrypt round
	if _, err = policy.AuthorizeCreate(n == 0, roleOf(caller), in.Role); err != nil {
		return nil, err
	}

	hash, err := us.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.CreateUser(ctx, domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
	}, func(existing int64) (domain.Role, error) {
		return policy.AuthorizeCreate(existing == 0, roleOf(caller), in.Role)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, ErrUsernameOrEmailTaken
		}
		return nil, err
	}

	us.mq.Publish(mq.NewEvent(http.MethodPost, user.ToResponseUser(*uRet)))
	us.mCounter.WithLabelValues(metrics.UserCreatedTotal).Inc()

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, caller *domain.User, id domain.ID, p domain.Profile) error {
	if err := policy.CanUpdateUser(roleOf(caller)); err != nil {
		return err
	}

	ok, err := us.userRepository.UpdateProfile(ctx, id, p)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return ErrUsernameOrEmailTaken
		}
		return err
	}
	if !ok {
		return ErrUserNotFound
	}

	us.publishStored(ctx, http.MethodPut, id)
	us.mCounter.WithLabelValues(metrics.UserUpdatedTotal).Inc()

	return nil
}

func (us *UserService) DeleteUser(ctx context.Context, caller *domain.User, id domain.ID) error {
	if err := policy.CanDeleteUser(roleOf(caller)); err != nil {
		return err
	}

	ok, err := us.userRepository.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}

	us.publishStored(ctx, http.MethodDelete, id)
	us.mCounter.WithLabelValues(metrics.UserDeletedTotal).Inc()

	return nil
}

// publishStored re-reads the row so the event carries what was committed.
// The mutation already succeeded, so a failed read only skips the event.
func (us *UserService) publishStored(ctx context.Context, method string, id domain.ID) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil || u == nil {
		return
	}
	us.mq.Publish(mq.NewEvent(method, user.ToResponseUser(*u)))
}

func (us *UserService) Ping(ctx context.Context) error {
	return us.userRepository.Ping(ctx)
}
