package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
)

const (
	ContextIdentity = "identity"
	ContextToken    = "sessionToken"

	// SessionCookie carries the same token as the Authorization header for
	// browser clients.
	SessionCookie = "session"
)

// Resolver turns a session token into an identity. A nil identity with a nil
// error means the token is not usable.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*access.Identity, error)
}

// Authenticate attaches the caller's identity to the context when the request
// carries a live session. Requests without one pass through anonymously; the
// services reject them where a session is required.
func Authenticate(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}
		c.Set(ContextToken, token)

		id, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if id != nil {
			c.Set(ContextIdentity, id)
		}

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// IdentityFrom returns the identity set by Authenticate, or nil.
func IdentityFrom(c *gin.Context) *access.Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*access.Identity)
	return id
}

// TokenFrom returns the raw token the request presented, valid or not.
func TokenFrom(c *gin.Context) string {
	return c.GetString(ContextToken)
}

// RequireSession rejects anonymous requests before any body is read. Role
// checks stay with the services.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c) == nil {
			httperr.Abort(c, httperr.ErrUnauthorized())
			return
		}
		c.Next()
	}
}
