package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	// loggerCtxKey stores the request-scoped logger in the request context.
	loggerCtxKey = contextKey("logger")
	// userIDKey stores the authenticated account's ID.
	userIDKey = contextKey("userID")
	// isAdminKey stores the authenticated account's administrator flag.
	isAdminKey = contextKey("isAdmin")
)

// GetUserIDFromContext retrieves the authenticated account ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			if id, ok := v.(string); ok {
				return id, true
			}
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetUserIDFromCtx retrieves the authenticated account ID from a standard context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	if v := ctx.Value(userIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id, true
		}
	}
	return "", false
}

// IsAdminFromContext reports whether the authenticated account is an administrator.
func IsAdminFromContext(c *gin.Context) bool {
	v, exists := c.Get(string(isAdminKey))
	if !exists {
		return false
	}
	isAdmin, ok := v.(bool)
	return ok && isAdmin
}
