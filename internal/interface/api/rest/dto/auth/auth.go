package auth

import (
	"user-admin-api/internal/interface/api/rest/dto/user"
)

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	LoginResponse struct {
		Status  string    `json:"status"`
		Message string    `json:"message"`
		Token   string    `json:"token"`
		User    user.User `json:"user"`
	}
)
