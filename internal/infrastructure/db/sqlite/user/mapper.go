package user

import (
	domain "user-admin-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	return &domain.User{
		ID:           domain.ID(model.ID),
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		IsActive:     model.IsActive,
		Role:         domain.RoleFromFlags(model.IsAdmin, model.IsSuperadmin),

		LastLogin: model.LastLogin,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: model.DeletedAt,
	}
}

func fromDBModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}
