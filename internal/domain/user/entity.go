package user

import (
	"time"
)

type (
	ID   int64
	User struct {
		ID           ID
		Username     string
		Email        string
		PasswordHash string
		FirstName    string
		LastName     string
		IsActive     bool
		Role         Role

		LastLogin *time.Time
		CreatedAt time.Time
		UpdatedAt time.Time
		DeletedAt *time.Time
	}
	Users []*User

	// Profile is the set of fields an administrator may edit.
	Profile struct {
		FirstName string
		LastName  string
		Username  string
	}

	// Registration is the input for a new account. Role is what the caller
	// asked for; the stored role is decided by the policy.
	Registration struct {
		Username  string
		Email     string
		Password  string
		FirstName string
		LastName  string
		Role      Role
	}
)

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// CanAuthenticate reports whether the account may log in or act as a caller.
func (u *User) CanAuthenticate() bool {
	return u.IsActive && !u.IsDeleted()
}
