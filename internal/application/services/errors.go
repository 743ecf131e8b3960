package services

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInactiveAccount       = errors.New("account is inactive")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
	ErrUsernameOrEmailTaken  = errors.New("username or email already exists")
	ErrUserNotFound          = errors.New("user not found")
)
