package domain

import (
	leads "github.com/leadhive/leadhive-backend/internal/leads/domain"
)

// PreferenceProfile is a provider's declared matching preferences. It is
// owned and written by the external profile service; the matching core only
// reads it. Every field is optional; an absent field is a first-class
// "no preference" state that contributes zero score.
type PreferenceProfile struct {
	ProviderID string   `json:"provider_id"`
	Categories []string `json:"categories,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	BudgetMin  *float64 `json:"budget_min,omitempty"`
	BudgetMax  *float64 `json:"budget_max,omitempty"`
	Industries []string `json:"industries,omitempty"`
}

// IsEmpty reports whether the profile carries no matching signal at all.
func (p *PreferenceProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Categories) == 0 && len(p.Locations) == 0 &&
		p.BudgetMin == nil && p.BudgetMax == nil && len(p.Industries) == 0
}

// MatchScore is the derived, non-persisted weighted similarity between one
// lead and one provider's preferences. Components are 0 or 1; Total is on a
// 0–100 scale. Recomputed on every ranking request, never cached.
type MatchScore struct {
	Category float64 `json:"category"`
	Location float64 `json:"location"`
	Budget   float64 `json:"budget"`
	Industry float64 `json:"industry"`
	Total    float64 `json:"total"`
}

// RankedLead pairs a lead with its computed score in a feed response.
type RankedLead struct {
	Lead  leads.Lead `json:"lead"`
	Score MatchScore `json:"score"`
}
