package models

// Role is the ordered permission level of a user account.
type Role string

const (
	RoleUser      Role = "USER"
	RoleLibrarian Role = "LIBRARIAN"
	RoleAdmin     Role = "ADMIN"
)

// Rank returns the position of the role in the management hierarchy.
// ADMIN > LIBRARIAN > USER. Unknown roles rank below USER.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleLibrarian:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleLibrarian || r == RoleAdmin
}

// IsStaff reports whether the role may manage the catalog and act on
// behalf of other users.
func (r Role) IsStaff() bool {
	return r == RoleLibrarian || r == RoleAdmin
}

// CanManage reports whether a subject with role r may manage an account
// with the target role. Admins manage anyone, librarians manage plain
// users only, users manage nobody.
func (r Role) CanManage(target Role) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleLibrarian:
		return target == RoleUser
	default:
		return false
	}
}
