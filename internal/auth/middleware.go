package auth

import (
	"net/http"

	dom "minifeed/internal/domain"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the cookie holding the session token.
const DefaultCookieName = "session_id"

const contextKeyUserID = "user_id"

// Sessions is the string-keyed binder used by the HTTP layer.
type Sessions = Binder[string]

// UserIDFromContext returns the current user ID set by RequireSession or OptionalSession.
func UserIDFromContext(c *gin.Context) (dom.UserID, bool) {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(dom.UserID)
	return id, ok
}

// RequireSession returns a middleware that resolves the session cookie
// and sets the current user ID in context. If missing or unbound, responds with 401.
func RequireSession(sessions *Sessions, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		userID, err := sessions.RequireAuth(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

// OptionalSession sets the user ID when the cookie resolves and never aborts.
func OptionalSession(sessions *Sessions, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			if userID, ok := sessions.Resolve(token); ok {
				c.Set(contextKeyUserID, userID)
			}
		}
		c.Next()
	}
}
