package service

import "libraryhub/internal/models"

// Actor identifies the authenticated subject of a request. It is built by
// the auth middleware from validated token claims and passed explicitly
// into every service call; nothing about the current user is cached in
// process-wide state.
type Actor struct {
	ID   string
	Role models.Role
}

// IsStaff reports whether the actor may manage the catalog and act on
// behalf of other users.
func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// CanManageUser reports whether the actor may create, edit or delete the
// target account. Admins manage anyone; librarians manage plain users.
func (a Actor) CanManageUser(target models.Role) bool {
	return a.Role.CanManage(target)
}

// CanActFor reports whether the actor may perform a user-scoped operation
// (borrow, view profile, view borrows) for the given user id.
func (a Actor) CanActFor(userID string) bool {
	return a.ID == userID || a.IsStaff()
}
