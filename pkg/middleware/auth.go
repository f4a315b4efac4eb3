// Package middleware contains any custom middleware used in the app
package middleware

import (
	"bitwise74/file-api/internal/access"
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/token"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// principalKey is where the resolved caller identity lives in the gin
// context
const principalKey = "principal"

// Principal returns the caller identity resolved by the auth middleware.
// Routes without auth middleware see the anonymous principal.
func Principal(c *gin.Context) access.Principal {
	if p, ok := c.Get(principalKey); ok {
		return p.(access.Principal)
	}

	return access.Anonymous
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(h, "Bearer ")
}

// resolve tries the given token types in order and builds a principal
// from the first one that verifies. Expiry is only reported when no type
// matched at all, so a valid token of a later type still wins.
func resolve(t *token.Service, raw string, types []token.Type) (access.Principal, error) {
	var lastErr error

	for _, typ := range types {
		claims, err := t.Decode(raw, typ)
		if err != nil {
			if lastErr == nil || !errors.Is(lastErr, apperr.New(apperr.TokenExpired)) {
				lastErr = err
			}
			continue
		}

		return access.Principal{
			UserID:       claims.UserID,
			IsAdmin:      typ == token.TypeAdmin,
			ScopedFileID: claims.FileID,
		}, nil
	}

	return access.Anonymous, lastErr
}

// NewAuthMiddleware authenticates the bearer token against the given
// token types. A missing header fails closed with TokenInvalid.
func NewAuthMiddleware(t *token.Service, types ...token.Type) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			apperr.Abort(c, apperr.New(apperr.TokenInvalid))
			return
		}

		p, err := resolve(t, raw, types)
		if err != nil {
			apperr.Abort(c, err)
			return
		}

		c.Set(principalKey, p)
		c.Set("userID", p.UserID)
		c.Next()
	}
}

// NewOptionalAuthMiddleware resolves a principal when a bearer token is
// present but lets unauthenticated requests through as anonymous. Public
// file reads rely on this. A token that is present but bad still fails,
// it doesn't silently downgrade to anonymous.
func NewOptionalAuthMiddleware(t *token.Service, types ...token.Type) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Set(principalKey, access.Anonymous)
			c.Next()
			return
		}

		p, err := resolve(t, raw, types)
		if err != nil {
			apperr.Abort(c, err)
			return
		}

		c.Set(principalKey, p)
		c.Set("userID", p.UserID)
		c.Next()
	}
}

// RequireAdmin gates maintenance routes on an admin-typed token
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Principal(c).IsAdmin {
			apperr.Abort(c, apperr.New(apperr.UnverifiedAdmin))
			return
		}

		c.Next()
	}
}
