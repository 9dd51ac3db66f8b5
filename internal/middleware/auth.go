package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/repository"
	"libraryhub/internal/service"
)

const actorKey = "actor"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the
// Authorization header and stores the acting subject in the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, service.Actor{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// ActorFromContext returns the authenticated subject set by AuthMiddleware.
func ActorFromContext(c *gin.Context) (service.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}

// RequireStaff rejects requests from subjects that may not manage the
// catalog or other users.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}
		if !actor.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePasswordChanged blocks every authenticated call while the account
// still carries a temporary password. Enforced server-side per request so
// no client can skip the password-set flow; the password-change route
// itself must be registered outside this middleware.
func RequirePasswordChanged(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), actor.ID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		if user.MustChangePassword {
			c.JSON(http.StatusForbidden, gin.H{"error": "password change required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
