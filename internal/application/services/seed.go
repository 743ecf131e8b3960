package services

import (
	"context"
	"fmt"

	domain "user-admin-api/internal/domain/user"
)

// SampleUsers are inserted in order into an empty store. The first one
// becomes the bootstrap superadmin and acts as the caller for the rest.
var SampleUsers = []domain.Registration{
	{Username: "admin", Email: "admin@example.com", Password: "admin123", FirstName: "Admin", LastName: "User", Role: domain.RoleSuperadmin},
	{Username: "johndoe", Email: "john@example.com", Password: "user123", FirstName: "John", LastName: "Doe", Role: domain.RoleUser},
	{Username: "janedoe", Email: "jane@example.com", Password: "user123", FirstName: "Jane", LastName: "Doe", Role: domain.RoleUser},
}

// Seed returns how many sample users were created; a non-empty store is left
// untouched.
func (us *UserService) Seed(ctx context.Context) (int, error) {
	n, err := us.userRepository.CountUsers(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	var caller *domain.User
	for i, r := range SampleUsers {
		u, err := us.CreateUser(ctx, caller, r)
		if err != nil {
			return i, fmt.Errorf("seed %s: %w", r.Username, err)
		}
		if caller == nil {
			caller = u
		}
	}

	return len(SampleUsers), nil
}
