package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"user-admin-api/internal/domain/user"
)

// TokenTTL is the lifetime of every issued session token.
const TokenTTL = time.Hour

var (
	ErrTokenMissing = errors.New("missing token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type Service struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(jwtSecret string, opts ...Option) *Service {
	s := &Service{
		jwtSecret: []byte(jwtSecret),
		ttl:       TokenTTL,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type Claims struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	IsSuperadmin bool   `json:"is_superadmin"`
	jwt.RegisteredClaims
}

func (s *Service) Issue(u *user.User) (string, error) {
	now := s.now()
	isAdmin, isSuperadmin := u.Role.Flags()
	claims := Claims{
		UserID:       int64(u.ID),
		Username:     u.Username,
		IsAdmin:      isAdmin,
		IsSuperadmin: isSuperadmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwtSecret)
}

func (s *Service) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID < 1 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
