package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wrnass1/hotelbooking/internal/auth"
	"github.com/wrnass1/hotelbooking/internal/domain/identity"
)

const (
	ctxUserIDKey   = "auth.user_id"
	ctxUsernameKey = "auth.username"
	ctxRoleKey     = "auth.role"
	apiKeyHeader   = "X-API-Key"
)

// APIKeyVerifier authenticates an opaque service-account key.
type APIKeyVerifier interface {
	VerifyKey(ctx context.Context, key string) (*identity.APIKey, error)
}

// AuthMiddleware authenticates the request from either a Bearer JWT or an
// X-API-Key header. API keys act as manager-level service accounts.
func AuthMiddleware(jwtManager *auth.JWTManager, keys APIKeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			claims, err := jwtManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Set(ctxUserIDKey, claims.UserID)
			c.Set(ctxUsernameKey, claims.Username)
			c.Set(ctxRoleKey, claims.Role)
			c.Next()
			return
		}

		if key := c.GetHeader(apiKeyHeader); key != "" && keys != nil {
			apiKey, err := keys.VerifyKey(c.Request.Context(), key)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
				return
			}
			c.Set(ctxUserIDKey, apiKey.ID())
			c.Set(ctxUsernameKey, apiKey.Name())
			c.Set(ctxRoleKey, identity.RoleManager)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
	}
}

// RequireRole rejects authenticated callers whose role does not match.
// Admins pass every role gate.
func RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := GetUserRole(c)
		if !ok || (current != role && current != identity.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// RequirePermission rejects callers whose role does not grant the permission.
func RequirePermission(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok || !auth.HasPermission(role, perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated principal's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserRole returns the authenticated principal's role.
func GetUserRole(c *gin.Context) (identity.Role, bool) {
	v, ok := c.Get(ctxRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(identity.Role)
	return role, ok
}
