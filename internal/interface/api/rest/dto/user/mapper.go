package user

import (
	"user-admin-api/internal/domain/user"
)

// ToResponseUser never carries the password hash.
func ToResponseUser(uDomain user.User) User {
	isAdmin, isSuperadmin := uDomain.Role.Flags()
	var u = User{
		ID:           int64(uDomain.ID),
		Username:     uDomain.Username,
		Email:        uDomain.Email,
		FirstName:    uDomain.FirstName,
		LastName:     uDomain.LastName,
		IsActive:     uDomain.IsActive,
		IsAdmin:      isAdmin,
		IsSuperadmin: isSuperadmin,
		LastLogin:    uDomain.LastLogin,
		CreatedAt:    uDomain.CreatedAt,
		UpdatedAt:    uDomain.UpdatedAt,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

// ToRegistration expects a request that already went through the validator.
func ToRegistration(r CreateRequest) user.Registration {
	role := user.RoleUser
	switch {
	case r.IsSuperadmin:
		role = user.RoleSuperadmin
	case r.IsAdmin:
		role = user.RoleAdmin
	}

	return user.Registration{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      role,
	}
}

func ToProfile(r UpdateRequest) user.Profile {
	return user.Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
	}
}
