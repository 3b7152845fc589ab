// Package session resolves the opaque session token that scopes every ledger
// operation. The token is not an authenticated identity: whoever presents it
// owns the transactions recorded under it.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "sessionId"
	CookiePath = "/"
	MaxAge     = 60 * 60 * 24 * 7 // seconds

	contextKey = "sessionId"
)

// Resolve returns the token to use for a create. A present token is reused
// unchanged; an absent one is replaced by a freshly minted random UUID.
func Resolve(token string) (id string, minted bool) {
	if token != "" {
		return token, false
	}
	return uuid.NewString(), true
}

// FromRequest reads the session cookie, returning "" when it is absent.
func FromRequest(c *gin.Context) string {
	token, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return token
}

// RequireSession aborts with 401 when the request carries no session cookie.
// Handlers behind it can rely on GetSessionID.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := FromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Set(contextKey, token)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) (string, bool) {
	id, exists := c.Get(contextKey)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}

// SetCookie persists a newly minted session token for seven days.
func SetCookie(c *gin.Context, id string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, MaxAge, CookiePath, "", secure, true)
}
