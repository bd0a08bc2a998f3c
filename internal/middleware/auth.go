package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/session"
)

const ContextPrincipal = "principal"

// Principal is the authenticated identity of a request.
type Principal struct {
	UserID         uint
	SessionID      string
	LastAnalysisID uint
}

// SessionMiddleware resolves the session cookie (or Bearer token) when one is
// present. It never rejects a request; see RequireAuth and RequirePageAuth.
func SessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessions.TokenFromRequest(c.Request)
		if token == "" {
			c.Next()
			return
		}

		sess, err := sessions.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(ContextPrincipal, Principal{
				UserID:         sess.UserID,
				SessionID:      sess.ID,
				LastAnalysisID: sess.LastAnalysisID,
			})
		case errors.Is(err, session.ErrInvalidToken):
		default:
			slog.ErrorContext(c.Request.Context(), "session_resolve_failed", "err", err)
		}

		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok && p.UserID != 0
}

// RequireAuth rejects anonymous API requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			httperr.Abort(c, httperr.ErrBusiness(httperr.CodeUnauthorized))
			return
		}
		c.Next()
	}
}

// RequirePageAuth redirects anonymous page requests to loginPath.
func RequirePageAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
