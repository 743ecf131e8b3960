// Package policy decides whether a caller's role permits an administrative
// action. Every function here is pure.
package policy

import (
	"errors"
	"fmt"

	"user-admin-api/internal/domain/user"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied: admins only")
	// ErrGrantRequiresSuperadmin is returned when a non-superadmin tries to
	// create an admin or superadmin. It matches ErrForbidden with errors.Is.
	ErrGrantRequiresSuperadmin = fmt.Errorf("%w: only superadmins can create other admins/superadmins", ErrForbidden)
)

func requireAdmin(caller user.Role) error {
	if caller == user.RoleGuest {
		return ErrUnauthenticated
	}
	if !caller.AtLeast(user.RoleAdmin) {
		return ErrForbidden
	}
	return nil
}

func CanListUsers(caller user.Role) error { return requireAdmin(caller) }

// CanUpdateUser does not distinguish self-edit from editing another admin.
func CanUpdateUser(caller user.Role) error { return requireAdmin(caller) }

func CanDeleteUser(caller user.Role) error { return requireAdmin(caller) }

// AuthorizeCreate returns the role the new record is stored with. An empty
// store always yields a superadmin, whoever asks and whatever was requested.
func AuthorizeCreate(storeEmpty bool, caller, requested user.Role) (user.Role, error) {
	if storeEmpty {
		return user.RoleSuperadmin, nil
	}
	if caller == user.RoleGuest {
		return user.RoleGuest, ErrUnauthenticated
	}
	if requested.AtLeast(user.RoleAdmin) && caller != user.RoleSuperadmin {
		if !caller.AtLeast(user.RoleAdmin) {
			return user.RoleGuest, ErrForbidden
		}
		return user.RoleGuest, ErrGrantRequiresSuperadmin
	}
	if !caller.AtLeast(user.RoleAdmin) {
		return user.RoleGuest, ErrForbidden
	}
	if requested < user.RoleUser {
		requested = user.RoleUser
	}
	return requested, nil
}
