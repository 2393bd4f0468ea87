package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	userRoleKey = "userRole"
)

// Roles accepted in X-User-Role.
const (
	RoleApplicant = "applicant"
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
)

// Auth reads the identity forwarded by the upstream gateway. Requests without
// X-User-Id are rejected; an unknown or missing role defaults to applicant.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(userIDKey, userID)
		c.Set(userRoleKey, normalizeRole(c.GetHeader("X-User-Role")))
		c.Next()
	}
}

func normalizeRole(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleOwner, "propietario", "landlord":
		return RoleOwner
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleApplicant
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// RoleFromContext fetches the role set by the auth middleware.
func RoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}

// RequireRole aborts with 403 unless the caller has one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFromContext(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		respond.Error(c, http.StatusForbidden, "forbidden", "Insufficient role", nil)
	}
}
