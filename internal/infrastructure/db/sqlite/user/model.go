package user

import (
	"time"
)

type (
	User struct {
		ID           int64      `db:"id"`
		Username     string     `db:"username"`
		Email        string     `db:"email"`
		PasswordHash string     `db:"password_hash"`
		FirstName    string     `db:"first_name"`
		LastName     string     `db:"last_name"`
		IsActive     bool       `db:"is_active"`
		IsAdmin      bool       `db:"is_admin"`
		IsSuperadmin bool       `db:"is_superadmin"`
		LastLogin    *time.Time `db:"last_login"`
		CreatedAt    time.Time  `db:"created_at"`
		UpdatedAt    time.Time  `db:"updated_at"`
		DeletedAt    *time.Time `db:"deleted_at"`
	}
	Users []*User
)
