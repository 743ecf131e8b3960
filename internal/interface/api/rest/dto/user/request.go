package user

type (
	CreateRequest struct {
		Username     string `json:"username"`
		Password     string `json:"password"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Email        string `json:"email"`
		IsAdmin      bool   `json:"is_admin"`
		IsSuperadmin bool   `json:"is_superadmin"`
	}
	UpdateRequest struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username"`
	}
)
