// internal/auth/role.go
package auth

// Role is the ordered access level of a caller: none < reader < admin.
type Role int

const (
	RoleNone Role = iota
	RoleReader
	RoleAdmin
)

// ParseRole maps a stored role string to its ordered level. Unknown and empty
// strings are RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "reader":
		return RoleReader
	case "admin":
		return RoleAdmin
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RoleReader:
		return "reader"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Meets reports whether the role satisfies a required minimum.
func (r Role) Meets(required Role) bool {
	return r >= required
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UID  string
	Role Role
}
