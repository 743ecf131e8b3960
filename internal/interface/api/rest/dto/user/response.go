package user

import (
	"time"
)

type (
	User struct {
		ID           int64      `json:"id"`
		Username     string     `json:"username"`
		Email        string     `json:"email"`
		FirstName    string     `json:"first_name"`
		LastName     string     `json:"last_name"`
		IsActive     bool       `json:"is_active"`
		IsAdmin      bool       `json:"is_admin"`
		IsSuperadmin bool       `json:"is_superadmin"`
		LastLogin    *time.Time `json:"last_login"`
		CreatedAt    time.Time  `json:"created_at"`
		UpdatedAt    time.Time  `json:"updated_at"`
	}
	Users        []User
	ResponseData struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Users   Users  `json:"users"`
	}
)
