package http

import (
	"github.com/gin-gonic/gin"

	"github.com/leadhive/leadhive-backend/internal/auth"
)

// Register registers the lead routes. Creation and the owner-scoped
// operations require the requester role; reads are open to any
// authenticated user.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", auth.RequireRole(auth.RoleRequester), h.CreateLead)
	rg.GET("/mine", auth.RequireRole(auth.RoleRequester), h.ListMine)
	rg.GET("/:id", h.GetLead)
	rg.POST("/:id/close", auth.RequireRole(auth.RoleRequester), h.CloseLead)
	rg.DELETE("/:id", auth.RequireRole(auth.RoleRequester), h.DeleteLead)
}
