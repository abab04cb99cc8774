package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio-web/internal/auth/domain"
	"github.com/devfolio/portfolio-web/internal/session"
)

const ctxIdentity = "identity"

// LoadIdentity restores the session identity, if any, into the Gin context.
// It never blocks a request: an absent, expired or tampered session simply
// leaves the request anonymous.
func LoadIdentity(store *session.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Next()
			return
		}

		sid, ok := session.VerifyValue(value, secret)
		if !ok {
			c.Next()
			return
		}

		ident, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxIdentity, ident)
		c.Next()
	}
}

// RequireLogin gates protected routes. Anonymous requests are redirected to
// the home route with no error body; there is no distinction between a
// missing and an expired session.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by LoadIdentity, or nil for an
// anonymous request.
func CurrentIdentity(c *gin.Context) *domain.Identity {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return nil
	}
	ident, _ := v.(*domain.Identity)
	return ident
}
