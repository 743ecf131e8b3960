package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"user-admin-api/internal/application/ports"
	"user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/metrics"
)

type AuthService struct {
	userRepository user.Repository
	hasher         ports.PasswordHasher
	session        ports.Session
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewAuthService(
	userRepository user.Repository,
	hasher ports.PasswordHasher,
	session ports.Session,
	mCounter *prometheus.CounterVec,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		session:        session,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

// Login checks the credentials of an active, non-deleted account, records the
// login time and returns a fresh session token.
func (as *AuthService) Login(ctx context.Context, username, password string) (string, *user.User, error) {
	u, err := as.userRepository.FetchUserByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("fetch user: %w", err)
	}
	if u == nil {
		as.hasher.Burn(password)
		as.mCounter.WithLabelValues(metrics.LoginFailedTotal).Inc()
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		as.mCounter.WithLabelValues(metrics.LoginFailedTotal).Inc()
		return "", nil, ErrInactiveAccount
	}
	if !as.hasher.Verify(password, u.PasswordHash) {
		as.mCounter.WithLabelValues(metrics.LoginFailedTotal).Inc()
		return "", nil, ErrInvalidCredentials
	}

	at := as.now().UTC()
	if err = as.userRepository.TouchLastLogin(ctx, u.ID, at); err != nil {
		return "", nil, fmt.Errorf("touch last login: %w", err)
	}
	u.LastLogin = &at
	u.UpdatedAt = at

	token, err := as.session.Issue(u)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrFailedToGenerateToken, err)
	}

	as.mCounter.WithLabelValues(metrics.LoginSuccessTotal).Inc()

	return token, u, nil
}
