package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-backend/internal/auth"
	leadsdomain "github.com/leadhive/leadhive-backend/internal/leads/domain"
	"github.com/leadhive/leadhive-backend/internal/matching/domain"
	"github.com/leadhive/leadhive-backend/internal/matching/service"
)

type fakeLeadSource struct {
	leads []leadsdomain.Lead
	err   error
}

func (f *fakeLeadSource) FindOpen(ctx context.Context) ([]leadsdomain.Lead, error) {
	return f.leads, f.err
}

type fakePrefSource struct {
	profiles map[string]*domain.PreferenceProfile
}

func (f *fakePrefSource) FindByProvider(ctx context.Context, providerID string) (*domain.PreferenceProfile, error) {
	profile, ok := f.profiles[providerID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	return profile, nil
}

func setupRouter(leadSource service.LeadSource, prefSource service.PreferenceSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.DevUser())

	handler := New(service.NewRankingService(leadSource, prefSource, domain.DefaultWeights))
	handler.Register(router.Group("/api/v1"))
	return router
}

func getFeed(router *gin.Engine, userID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req.Header.Set("X-User-Id", userID)
	req.Header.Set("X-User-Role", role)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetFeed(t *testing.T) {
	openLead := func(id, category, location string, budget float64, age time.Duration) leadsdomain.Lead {
		return leadsdomain.Lead{
			ID:        id,
			Category:  category,
			Location:  location,
			Budget:    budget,
			Status:    leadsdomain.StatusOpen,
			CreatedAt: time.Now().UTC().Add(-age),
		}
	}

	min, max := 100.0, 500.0
	prefs := &fakePrefSource{profiles: map[string]*domain.PreferenceProfile{
		"prov-1": {
			ProviderID: "prov-1",
			Categories: []string{"plumbing"},
			Locations:  []string{"Colombo"},
			BudgetMin:  &min,
			BudgetMax:  &max,
			Industries: []string{"construction"},
		},
	}}

	t.Run("returns ranked feed best first", func(t *testing.T) {
		source := &fakeLeadSource{leads: []leadsdomain.Lead{
			openLead("weak", "plumbing", "Kandy", 50, time.Hour),
			openLead("strong", "plumbing", "Colombo", 200, 2*time.Hour),
			openLead("none", "catering", "Galle", 5000, time.Hour),
		}}
		router := setupRouter(source, prefs)

		w := getFeed(router, "prov-1", auth.RoleProvider)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Feed  []domain.RankedLead `json:"feed"`
			Count int                 `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, "strong", resp.Feed[0].Lead.ID)
		assert.Equal(t, "weak", resp.Feed[1].Lead.ID)
		assert.Greater(t, resp.Feed[0].Score.Total, resp.Feed[1].Score.Total)
	})

	t.Run("provider without preferences gets empty feed", func(t *testing.T) {
		source := &fakeLeadSource{leads: []leadsdomain.Lead{openLead("l1", "plumbing", "Colombo", 200, time.Hour)}}
		router := setupRouter(source, prefs)

		w := getFeed(router, "prov-unknown", auth.RoleProvider)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Feed  []domain.RankedLead `json:"feed"`
			Count int                 `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.Count)
		assert.Empty(t, resp.Feed)
	})

	t.Run("requester role is forbidden", func(t *testing.T) {
		router := setupRouter(&fakeLeadSource{}, prefs)

		w := getFeed(router, "req-1", auth.RoleRequester)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("lead source failure is a retryable 503", func(t *testing.T) {
		source := &fakeLeadSource{err: errors.New("connection refused")}
		router := setupRouter(source, prefs)

		w := getFeed(router, "prov-1", auth.RoleProvider)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
