package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadhive/leadhive-backend/internal/auth"
	"github.com/leadhive/leadhive-backend/internal/leads/domain"
	"github.com/leadhive/leadhive-backend/internal/leads/service"
)

// Handler exposes lead management over HTTP.
type Handler struct {
	leadService *service.LeadService
}

func New(leadService *service.LeadService) *Handler {
	return &Handler{leadService: leadService}
}

// CreateLead posts a new lead owned by the authenticated requester.
func (h *Handler) CreateLead(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var body CreateLeadRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), &domain.CreateLeadRequest{
		OwnerID:     userID,
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Subcategory: body.Subcategory,
		Budget:      body.Budget,
		Location:    body.Location,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create lead, please try again"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead": lead})
}

// GetLead retrieves a single lead by ID.
func (h *Handler) GetLead(c *gin.Context) {
	lead, err := h.leadService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get lead, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// ListMine lists the authenticated requester's own leads.
func (h *Handler) ListMine(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	list, err := h.leadService.ListOwn(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list leads, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": list})
}

// CloseLead transitions the requester's own open lead to closed.
func (h *Handler) CloseLead(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	lead, err := h.leadService.Close(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		case errors.Is(err, domain.ErrNotLeadOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this lead"})
		case errors.Is(err, domain.ErrLeadNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "lead is not open"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close lead, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead})
}

// DeleteLead soft-deletes the requester's own lead.
func (h *Handler) DeleteLead(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	err := h.leadService.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLeadNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "lead not found"})
		case errors.Is(err, domain.ErrNotLeadOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not own this lead"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete lead, please try again"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
