package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
	CtxEmail    = "email"
)

// User roles. Requesters post leads and decide on proposals; providers
// browse the ranked feed and submit proposals.
const (
	RoleRequester = "requester"
	RoleProvider  = "provider"
)

// UserID extracts the authenticated user ID from the Gin context.
// This is set by Middleware.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// UserRole extracts the caller's role from the Gin context.
func UserRole(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserRole))
}
