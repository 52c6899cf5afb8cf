package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadhive/leadhive-backend/internal/auth"
	"github.com/leadhive/leadhive-backend/internal/proposals/domain"
	"github.com/leadhive/leadhive-backend/internal/proposals/service"
)

// Handler exposes the proposal lifecycle over HTTP.
type Handler struct {
	proposalService *service.ProposalService
}

func New(proposalService *service.ProposalService) *Handler {
	return &Handler{proposalService: proposalService}
}

// SubmitProposal creates a pending proposal from the authenticated
// provider on an open lead.
func (h *Handler) SubmitProposal(c *gin.Context) {
	providerID := auth.UserID(c)
	if providerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var body SubmitProposalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	proposal, err := h.proposalService.Submit(c.Request.Context(), providerID, c.Param("id"), body.ProposalText)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"proposal": proposal})
}

// ListForLead lists every proposal on the requester's own lead.
func (h *Handler) ListForLead(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	list, err := h.proposalService.ListForLead(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": list})
}

// AcceptProposal transitions a pending proposal to accepted, storing the
// requester's contact details on it.
func (h *Handler) AcceptProposal(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var body AcceptProposalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	proposal, err := h.proposalService.Accept(c.Request.Context(), userID, c.Param("id"), c.Param("proposalId"), body.ContactDetails)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// RejectProposal transitions a pending proposal to rejected.
func (h *Handler) RejectProposal(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	proposal, err := h.proposalService.Reject(c.Request.Context(), userID, c.Param("id"), c.Param("proposalId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// ListMine lists the authenticated provider's own proposals.
func (h *Handler) ListMine(c *gin.Context) {
	providerID := auth.UserID(c)
	if providerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	list, err := h.proposalService.ListOwn(c.Request.Context(), providerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposals": list})
}

// writeError maps domain errors to HTTP statuses. State conflicts are
// legitimate concurrent-use outcomes and come back as client errors;
// anything unrecognized is an infrastructure failure with a generic
// retry message.
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, domain.ErrLeadNotAvailable):
		c.JSON(http.StatusNotFound, gin.H{"error": "lead is not available for proposals"})
	case errors.Is(err, domain.ErrProposalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
	case errors.Is(err, domain.ErrDuplicateProposal):
		c.JSON(http.StatusConflict, gin.H{"error": "you have already submitted a proposal for this lead"})
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "proposal is no longer pending"})
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this lead"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}
