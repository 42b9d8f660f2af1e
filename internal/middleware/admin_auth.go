package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/academy-labs/academy-api/config"
	"github.com/academy-labs/academy-api/pkg/metrics"
	"github.com/academy-labs/academy-api/pkg/token"
)

// AdminAuthMiddleware guards admin routes. Access is granted either by a
// session previously marked as admin or by HTTP Basic credentials on this
// request; a successful Basic check promotes the session so the browser can
// drop the Authorization header afterwards.
//
// When no admin credentials are configured the guard fails closed with 500
// rather than letting every request through.
func AdminAuthMiddleware(cfg *config.AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Username == "" || cfg.Password == "" {
			metrics.AuthAttempts.WithLabelValues("unconfigured").Inc()
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Admin credentials not configured",
			})
			return
		}

		if sess, ok := GetSession(c); ok && sess.IsAdminAuthenticated() {
			metrics.AuthAttempts.WithLabelValues("session").Inc()
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			metrics.AuthAttempts.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		username, password, ok := parseBasicAuth(authHeader)
		if ok &&
			token.TimingSafeCompare(username, cfg.Username) &&
			token.TimingSafeCompare(password, cfg.Password) {
			if sess, found := GetSession(c); found {
				sess.SetAdminAuthenticated(true)
			}
			metrics.AuthAttempts.WithLabelValues("basic").Inc()
			c.Next()
			return
		}

		metrics.AuthAttempts.WithLabelValues("rejected").Inc()
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
	}
}

// parseBasicAuth decodes an "Authorization: Basic <base64>" header into its
// username and password parts.
func parseBasicAuth(header string) (string, string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return "", "", false
	}
	return credentials[0], credentials[1], true
}
