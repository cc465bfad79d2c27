package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshare-be/internal/entities"
	"foodshare-be/internal/session"
)

// SessionCookie is the name of the cookie carrying the session ID.
const SessionCookie = "fs_session"

// Keys under which the authenticated identity is stored in the request
// context by RequireAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// RequireAuth resolves the session cookie and stores the user's ID and
// role in the request context. A missing or dead session redirects to
// the login page; this is the "log in" half of the auth/role asymmetry.
func RequireAuth(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextRole, sess.Role)
		c.Next()
	}
}

// RequireRole rejects any session whose role is not exactly the named
// role. Roles are flat: there is no hierarchy and no multi-role user. A
// mismatch is "not permitted", a 403 with no redirect.
func RequireRole(role entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get(ContextRole)
		if !exists || got.(entities.Role) != role {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied. " + string(role) + " privileges required.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user's ID set by RequireAuth.
func UserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserID)
	s, _ := id.(string)
	return s
}

// Role returns the authenticated user's role set by RequireAuth.
func Role(c *gin.Context) entities.Role {
	r, _ := c.Get(ContextRole)
	role, _ := r.(entities.Role)
	return role
}
