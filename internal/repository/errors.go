package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Storage-level sentinel errors. Services and handlers match on these with
// errors.Is; raw gorm/driver errors never leave this package undecorated.
var (
	ErrNotFound           = errors.New("record not found")
	ErrBookUnavailable    = errors.New("no copies available")
	ErrAlreadyReturned    = errors.New("borrow already returned")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateISBN      = errors.New("isbn already in use")
	ErrBorrowsExist       = errors.New("user has dependent borrow records")
	ErrHasActiveBorrows   = errors.New("book has active borrows")
	ErrQuantityBelowLoans = errors.New("quantity below outstanding loans")
)

const pgUniqueViolation = "23505"

// isUniqueViolation detects a unique-constraint failure from postgres
// (pgx error code) or sqlite (used by repository tests).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
