package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DevUser sets user identity from headers without verifying a token.
// - X-User-Id falls back to "demo-user", X-User-Role to "requester".
// - Use this ONLY for development/testing.
func DevUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}
		role := strings.TrimSpace(c.GetHeader("X-User-Role"))
		if role == "" {
			role = RoleRequester
		}

		c.Set(CtxUserID, uid)
		c.Set(CtxUserRole, role)

		c.Next()
	}
}
