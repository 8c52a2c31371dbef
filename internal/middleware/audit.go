package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/observability"
	"github.com/jirani-app/app-jirani/internal/utils"
	"go.uber.org/zap"
)

// AuditMiddleware records write requests the API refused. Successful writes
// are audited by the handlers themselves with their before and after values.
// Request bodies are never recorded since they carry passwords.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodDelete && method != http.MethodPatch {
			c.Next()
			return
		}

		resource := extractResourceFromPath(c.Request.URL.Path)
		if resource == "" {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status < 400 || status >= 500 {
			return
		}

		metadata := map[string]string{
			"endpoint":        c.Request.URL.Path,
			"method":          method,
			"response_status": statusLabel(status),
		}
		if route := c.FullPath(); route != "" {
			metadata["route"] = route
		}

		auditCtx := utils.GetAuditContextFromGin(c)
		if err := utils.LogAuditEvent(c.Request.Context(), auditCtx, utils.AuditActionRejected, resource, extractResourceID(c), nil, nil, metadata); err != nil {
			observability.Logger().Warn("failed to log audit event",
				zap.Error(err),
				zap.String("endpoint", c.Request.URL.Path),
				zap.String("method", method),
			)
		}
	}
}

// extractResourceFromPath maps a request path to an audit resource. Paths
// outside the account and profile surface return "".
func extractResourceFromPath(path string) string {
	path = strings.TrimPrefix(path, "/v1/")

	switch {
	case path == "auth/sign-up":
		return utils.AuditResourceAccount
	case strings.HasPrefix(path, "auth/"):
		return utils.AuditResourceSession
	case path == "profile" || strings.HasPrefix(path, "profile/"):
		return utils.AuditResourceProfile
	default:
		return ""
	}
}

// extractResourceID picks the most specific identifier available
func extractResourceID(c *gin.Context) string {
	if id := c.Param("field"); id != "" {
		return id
	}
	if id := c.Param("provider"); id != "" {
		return id
	}
	return c.GetString("user_id")
}
