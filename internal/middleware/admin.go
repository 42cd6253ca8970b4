package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
)

// AdminRequired creates a Gin middleware that rejects callers whose account
// does not carry the administrator flag. It runs after AuthMiddleware and is
// the pass/fail gate in front of every /admin route; privileged services
// re-check the flag themselves as well.
func AdminRequired(accountSvc portssvc.AccountReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		account, err := accountSvc.GetAccountByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			logger.Error("Failed to resolve caller account for admin check", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if !account.IsAdmin {
			logger.Warn("Non-admin caller rejected from admin route", slog.String("user_id", userID))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Administrator access required"})
			return
		}

		c.Set(string(isAdminKey), true)
		c.Next()
	}
}
