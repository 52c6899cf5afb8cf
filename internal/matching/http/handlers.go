package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadhive/leadhive-backend/internal/auth"
	"github.com/leadhive/leadhive-backend/internal/matching/service"
)

// Handler exposes the ranked lead feed.
type Handler struct {
	ranking *service.RankingService
}

func New(ranking *service.RankingService) *Handler {
	return &Handler{ranking: ranking}
}

// GetFeed returns the provider's ranked feed of open leads. A provider
// with no matching preferences gets an empty list.
func (h *Handler) GetFeed(c *gin.Context) {
	providerID := auth.UserID(c)
	if providerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ranked, err := h.ranking.Rank(c.Request.Context(), providerID)
	if err != nil {
		// Repository failures are retryable; keep the detail out of the
		// response.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feed temporarily unavailable, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feed": ranked, "count": len(ranked)})
}

// Register registers the feed route; providers only.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/feed", auth.RequireRole(auth.RoleProvider), h.GetFeed)
}
