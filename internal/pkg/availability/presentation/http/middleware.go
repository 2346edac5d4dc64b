package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FlintShadey/huddleuptime/internal/auth"
	appLog "github.com/FlintShadey/huddleuptime/internal/log"
)

// RequireBasicAuth guards write routes with Argon2id-hashed credentials.
// A nil creds disables the check.
func RequireBasicAuth(creds *auth.Credentials, realm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if creds == nil {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok || !creds.Check(user, pass) {
			appLog.Warn("failed auth attempt", "remote", c.ClientIP(), "user", user, "path", c.FullPath())
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
