package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":            true,
	"/api/v1/auth/login": true,
}

// PosthogMiddleware creates a Gin middleware handler that records successful
// API calls of authenticated users as PostHog events.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if role, ok := GetUserRoleFromContext(c); ok {
			props["role"] = string(role)
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName turns a route template into an event name, e.g.
// GET /api/v1/debts/:partnerID -> "get_debts_partnerID". Unmatched routes give "".
func EventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	path := strings.TrimPrefix(fullPath, "/api/v1")
	path = strings.Trim(path, "/")
	path = strings.ReplaceAll(path, ":", "")
	path = strings.ReplaceAll(path, "/", "_")
	if path == "" {
		return ""
	}
	return strings.ToLower(method) + "_" + path
}
