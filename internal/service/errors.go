package service

import "errors"

// Domain errors returned to the API boundary. Handlers translate these to
// HTTP statuses; nothing here is fatal to the process.
var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid token")
	ErrEmailInUse             = errors.New("email already in use")
	ErrForbidden              = errors.New("operation not permitted")
	ErrCannotDeleteSelf       = errors.New("cannot delete own account")
	ErrInvalidDueDate         = errors.New("due date outside allowed window")
	ErrInvalidRole            = errors.New("invalid role")
	ErrValidation             = errors.New("invalid input")
	ErrPasswordChangeRequired = errors.New("password change required")
)
