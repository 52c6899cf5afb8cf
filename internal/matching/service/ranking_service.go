package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	leads "github.com/leadhive/leadhive-backend/internal/leads/domain"
	"github.com/leadhive/leadhive-backend/internal/matching/domain"
)

const repoTimeout = 5 * time.Second

// LeadSource supplies the candidate leads for ranking: open, not deleted,
// not past expiry.
type LeadSource interface {
	FindOpen(ctx context.Context) ([]leads.Lead, error)
}

// PreferenceSource supplies a provider's declared preferences.
type PreferenceSource interface {
	FindByProvider(ctx context.Context, providerID string) (*domain.PreferenceProfile, error)
}

// RankingService scores all open leads against a provider's preferences and
// returns them best-first. It is stateless between calls; scores are never
// cached because preferences and lead status can change at any time.
type RankingService struct {
	leads   LeadSource
	prefs   PreferenceSource
	weights domain.Weights
}

func NewRankingService(leadSource LeadSource, prefSource PreferenceSource, weights domain.Weights) *RankingService {
	return &RankingService{leads: leadSource, prefs: prefSource, weights: weights}
}

// Rank returns the provider's feed: every open lead with a non-zero match
// score, sorted by total descending, ties broken by lead creation time
// descending. A provider with no preferences gets an empty feed rather
// than a zero-score dump of every lead.
func (s *RankingService) Rank(ctx context.Context, providerID string) ([]domain.RankedLead, error) {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	profile, err := s.prefs.FindByProvider(cctx, providerID)
	if err != nil && !errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, fmt.Errorf("rank: load preferences: %w", err)
	}

	if profile.IsEmpty() {
		return []domain.RankedLead{}, nil
	}

	open, err := s.leads.FindOpen(cctx)
	if err != nil {
		return nil, fmt.Errorf("rank: fetch open leads: %w", err)
	}

	ranked := make([]domain.RankedLead, 0, len(open))
	for i := range open {
		score := domain.Score(&open[i], profile, s.weights)
		if score.Total == 0 {
			continue
		}
		ranked = append(ranked, domain.RankedLead{Lead: open[i], Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score.Total != ranked[j].Score.Total {
			return ranked[i].Score.Total > ranked[j].Score.Total
		}
		if !ranked[i].Lead.CreatedAt.Equal(ranked[j].Lead.CreatedAt) {
			return ranked[i].Lead.CreatedAt.After(ranked[j].Lead.CreatedAt)
		}
		// stable across repeated calls even for identical timestamps
		return ranked[i].Lead.ID < ranked[j].Lead.ID
	})

	return ranked, nil
}
