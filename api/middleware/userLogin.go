package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const UserLoginHeader = "X-USER-LOGIN"

// UserLoginMiddleware reads the login of the current user, set by the
// authenticating proxy in front of the service
func UserLoginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		login := strings.TrimSpace(c.GetHeader(UserLoginHeader))

		// Store in gin context for later use
		c.Set("UserLogin", login)
		c.Next()
	}
}
