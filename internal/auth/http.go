package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devfolio/portfolio-web/internal/session"
)

const stateCookie = "oauth_state"

// Handler owns the login, callback, dashboard and logout routes.
type Handler struct {
	provider Provider
	sessions *session.Store
	secret   string
}

func NewHandler(provider Provider, sessions *session.Store, secret string) *Handler {
	return &Handler{provider: provider, sessions: sessions, secret: secret}
}

// Login starts the OAuth2 authorization-code flow: it plants a one-shot
// state cookie and redirects to the provider consent page.
func (h *Handler) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback completes the flow. Every failure path, user denial included,
// collapses into a redirect to the home route.
func (h *Handler) Callback(c *gin.Context) {
	code := c.Query("code")
	if c.Query("error") != "" || code == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	wantState, err := c.Cookie(stateCookie)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		log.Printf("[warn] operation=oauth_callback message=state mismatch")
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	ident, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("[warn] operation=oauth_callback error=%v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	sid, err := h.sessions.Create(c.Request.Context(), *ident)
	if err != nil {
		log.Printf("[error] operation=create_session error=%v", err)
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	maxAge := int(h.sessions.TTL().Seconds())
	c.SetCookie(session.CookieName, session.SignValue(sid, h.secret), maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/dashboard")
}

// Dashboard greets the signed-in user. It sits behind RequireLogin.
func (h *Handler) Dashboard(c *gin.Context) {
	ident := CurrentIdentity(c)
	if ident == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"Identity": ident})
}

// Logout invalidates the session and clears the cookie. Logging out while
// already anonymous is harmless.
func (h *Handler) Logout(c *gin.Context) {
	if value, err := c.Cookie(session.CookieName); err == nil {
		if sid, ok := session.VerifyValue(value, h.secret); ok {
			if err := h.sessions.Destroy(c.Request.Context(), sid); err != nil {
				log.Printf("[warn] operation=logout error=%v", err)
			}
		}
	}

	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
