package user

import (
	"time"
)

type (
	User struct {
		ID           int64
		Username     string
		Email        string
		PasswordHash string
		FirstName    string
		LastName     string
		IsActive     bool
		IsAdmin      bool
		IsSuperadmin bool

		LastLogin *time.Time
		CreatedAt time.Time
		UpdatedAt time.Time
		DeletedAt *time.Time
	}
	Users []*User
)

func (u *User) scanDest() []any {
	return []any{
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.IsActive,
		&u.IsAdmin,
		&u.IsSuperadmin,

		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	}
}
