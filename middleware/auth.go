package middleware

import (
	"errors"
	"net/http"
	"strings"

	"reservation-api/auth"
	"reservation-api/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Verifier is the part of the token service the gate needs.
type Verifier interface {
	Verify(token string) (auth.Identity, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func unauthorized(c *gin.Context, err error) {
	msg := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrExpired):
		msg = "Token expired"
	case errors.Is(err, auth.ErrRevoked):
		msg = "Token revoked"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// AuthRequired validates the JWT and injects the identity into context
func AuthRequired(tokens Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			return
		}
		id, err := tokens.Verify(tokenStr)
		if err != nil {
			unauthorized(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a token is sent. A token that is
// sent but does not verify is still rejected.
func OptionalAuth(tokens Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be 'Bearer <token>'"})
			return
		}
		id, err := tokens.Verify(tokenStr)
		if err != nil {
			unauthorized(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RoleRequired enforces an exact role match. Roles are not hierarchical:
// an admin token does not satisfy RoleRequired(RoleUser).
func RoleRequired(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			return
		}
		if id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: " + string(role) + "s only"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the verified caller, if the request carried one.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

// OptionalIdentity is GetIdentity shaped for services that take a nil
// caller for anonymous requests.
func OptionalIdentity(c *gin.Context) *auth.Identity {
	id, ok := GetIdentity(c)
	if !ok {
		return nil
	}
	return &id
}
