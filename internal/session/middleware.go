package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName identifies the browser session carrying analysis state.
	CookieName = "agriboost_session"

	contextKey = "sessionId"

	cookieMaxAge = int(DefaultTTL / 1e9)
)

// Middleware ensures every request carries a session ID, issuing a cookie on
// first contact.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, id, cookieMaxAge, "/", "", false, true)
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

// IDFromContext returns the session ID set by Middleware.
func IDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(contextKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
