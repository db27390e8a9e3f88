package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conexion-ipp/backend/internal/users"
)

const ctxCurrentUser = "current_user"

// UserStore resolves verified identities to local user rows.
// Implemented by *users.Repo.
type UserStore interface {
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*users.User, error)
	Sync(ctx context.Context, in users.SyncInput) (*users.User, bool, error)
}

// RequireUser verifies the bearer token and resolves it to an existing local
// user, storing the user in the Gin context. Any failure, including a verified
// token with no provisioned user, yields a 401 with a Bearer challenge and no
// detail on the cause.
func RequireUser(verifier TokenVerifier, store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || verifier == nil {
			unauthorized(c)
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := store.GetByFirebaseUID(c.Request.Context(), ident.UID)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ctxCurrentUser, user)
		c.Next()
	}
}

// RequireAdmin gates mutating routes on the resolved user's admin flag.
// Must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			unauthorized(c)
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "the user doesn't have enough privileges"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by RequireUser, or nil.
func CurrentUser(c *gin.Context) *users.User {
	if u, ok := c.Get(ctxCurrentUser); ok {
		if user, ok := u.(*users.User); ok {
			return user
		}
	}
	return nil
}

// extractToken extracts the Bearer token from the Authorization header.
// The scheme is matched case-insensitively per RFC 9110.
func extractToken(c *gin.Context) string {
	const scheme = "Bearer "
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > len(scheme) && strings.EqualFold(bearerToken[:len(scheme)], scheme) {
		return bearerToken[len(scheme):]
	}
	return ""
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}
