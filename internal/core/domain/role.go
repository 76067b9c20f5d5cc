package domain

// Role is the closed set of application roles. The zero value is not a
// valid role; absence of a role is always represented by ErrProfileNotFound,
// never by a default member of the set.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// ParseRole converts a stored role string into a Role, rejecting anything
// outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
