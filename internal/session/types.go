package session

// Role is the closed set of portal roles.
type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleRegistrar Role = "registrar"
	RoleAdmin     Role = "admin"
)

// IsValidRole checks if the given role is a known portal role.
func IsValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleRegistrar, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the resolved session identity. It is created on a successful
// identity lookup and never mutated afterwards.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
