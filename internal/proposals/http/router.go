package http

import (
	"github.com/gin-gonic/gin"

	"github.com/leadhive/leadhive-backend/internal/auth"
)

// RegisterLeadSubroutes mounts the per-lead proposal routes on the leads
// group, and Register mounts the provider-scoped listing.
func (h *Handler) RegisterLeadSubroutes(leadsGroup *gin.RouterGroup) {
	leadsGroup.POST("/:id/proposals", auth.RequireRole(auth.RoleProvider), h.SubmitProposal)
	leadsGroup.GET("/:id/proposals", auth.RequireRole(auth.RoleRequester), h.ListForLead)
	leadsGroup.POST("/:id/proposals/:proposalId/accept", auth.RequireRole(auth.RoleRequester), h.AcceptProposal)
	leadsGroup.POST("/:id/proposals/:proposalId/reject", auth.RequireRole(auth.RoleRequester), h.RejectProposal)
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/proposals/mine", auth.RequireRole(auth.RoleProvider), h.ListMine)
}
