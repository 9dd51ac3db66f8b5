package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/repository"
	"libraryhub/internal/service"
)

// respondError translates domain errors into HTTP statuses. Anything not
// in the taxonomy is a 500 with a generic message; storage internals are
// never echoed to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrCannotDeleteSelf),
		errors.Is(err, service.ErrPasswordChangeRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicateISBN),
		errors.Is(err, repository.ErrBookUnavailable),
		errors.Is(err, repository.ErrAlreadyReturned),
		errors.Is(err, repository.ErrBorrowsExist),
		errors.Is(err, repository.ErrHasActiveBorrows):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidDueDate),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, repository.ErrQuantityBelowLoans):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
