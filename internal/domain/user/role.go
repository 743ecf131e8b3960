package user

// Role is an ordered privilege level. Each level includes every capability of
// the levels below it.
type Role int

const (
	RoleGuest Role = iota
	RoleUser
	RoleAdmin
	RoleSuperadmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleSuperadmin:
		return "superadmin"
	default:
		return "guest"
	}
}

func (r Role) AtLeast(min Role) bool { return r >= min }

// Flags returns the persisted is_admin / is_superadmin pair for r.
func (r Role) Flags() (isAdmin, isSuperadmin bool) {
	return r >= RoleAdmin, r == RoleSuperadmin
}

// RoleFromFlags maps stored boolean columns onto a Role. Superadmin wins over
// admin regardless of the is_admin column.
func RoleFromFlags(isAdmin, isSuperadmin bool) Role {
	switch {
	case isSuperadmin:
		return RoleSuperadmin
	case isAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}
