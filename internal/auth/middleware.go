package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route targets for guard redirects.
const (
	HomePath  = "/"
	LoginPath = "/auth/login"
)

// ContextKeyUser is the Gin context key under which the session's user
// snapshot is stored for handlers and templates.
const ContextKeyUser = "auth_user"

// Guards are the two route-level authorization checks. Each either lets the
// request through untouched or short-circuits with a redirect; neither ever
// produces an error response.
type Guards struct {
	sessions *SessionManager
}

// NewGuards creates route guards over the given session manager.
func NewGuards(sessions *SessionManager) *Guards {
	return &Guards{sessions: sessions}
}

// RequireAnonymous redirects authenticated requests to the home route.
// Applied to signup and login so a logged-in user cannot re-enter them.
func (g *Guards) RequireAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.sessions.IsAuthenticated(c.Request) {
			c.Redirect(http.StatusFound, HomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthenticated redirects anonymous requests to the login route,
// preserving the originally requested path for the post-login redirect.
func (g *Guards) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.sessions.IsAuthenticated(c.Request) {
			next := sanitizeRedirectPath(c.Request.URL.Path)
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(next))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionContext exposes the session's user snapshot to handlers and
// templates via the Gin context. It performs no authorization.
func (g *Guards) SessionContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := g.sessions.CurrentUser(c.Request); user != nil {
			c.Set(ContextKeyUser, user)
		}
		c.Next()
	}
}

// UserFromContext retrieves the session user snapshot placed by
// SessionContext. Returns nil for anonymous requests.
func UserFromContext(c *gin.Context) *SessionUser {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*SessionUser); ok {
			return user
		}
	}
	return nil
}

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/" if
// invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return HomePath
}
