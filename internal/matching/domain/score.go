package domain

import (
	"strings"

	leads "github.com/leadhive/leadhive-backend/internal/leads/domain"
)

// Weights are the component weights of the match score. They must sum to 1.0.
type Weights struct {
	Category float64
	Location float64
	Budget   float64
	Industry float64
}

// DefaultWeights is the canonical 30/25/25/20 split.
var DefaultWeights = Weights{
	Category: 0.30,
	Location: 0.25,
	Budget:   0.25,
	Industry: 0.20,
}

// categoryIndustry maps a lead category to the industry it belongs to, so a
// provider declaring an industry matches leads posted under any of its
// categories.
var categoryIndustry = map[string]string{
	"web_development":      "technology",
	"mobile_development":   "technology",
	"software_development": "technology",
	"it_support":           "technology",
	"data_entry":           "technology",
	"graphic_design":       "creative",
	"design":               "creative",
	"photography":          "creative",
	"video_production":     "creative",
	"copywriting":          "marketing",
	"marketing":            "marketing",
	"seo":                  "marketing",
	"social_media":         "marketing",
	"accounting":           "finance",
	"bookkeeping":          "finance",
	"tax_preparation":      "finance",
	"legal":                "legal",
	"construction":         "construction",
	"plumbing":             "construction",
	"electrical":           "construction",
	"cleaning":             "home_services",
	"gardening":            "home_services",
	"removals":             "home_services",
}

// Score computes the weighted match between a lead and a provider's
// preferences. It is pure and total: it never fails, and absent preference
// fields simply contribute zero.
func Score(lead *leads.Lead, prefs *PreferenceProfile, w Weights) MatchScore {
	var s MatchScore
	if lead == nil || prefs.IsEmpty() {
		return s
	}

	if containsFold(prefs.Categories, lead.Category) {
		s.Category = 1
	}
	if locationMatches(lead.Location, prefs.Locations) {
		s.Location = 1
	}
	if budgetMatches(lead.Budget, prefs.BudgetMin, prefs.BudgetMax) {
		s.Budget = 1
	}
	if industryMatches(lead, prefs.Industries) {
		s.Industry = 1
	}

	s.Total = 100 * (w.Category*s.Category + w.Location*s.Location +
		w.Budget*s.Budget + w.Industry*s.Industry)
	return s
}

// locationMatches does case-insensitive substring containment in both
// directions, so "London" and "Central London" match each other. Locations
// are free text, not geocoded.
func locationMatches(leadLocation string, preferred []string) bool {
	loc := strings.ToLower(strings.TrimSpace(leadLocation))
	if loc == "" {
		return false
	}
	for _, p := range preferred {
		pl := strings.ToLower(strings.TrimSpace(p))
		if pl == "" {
			continue
		}
		if strings.Contains(loc, pl) || strings.Contains(pl, loc) {
			return true
		}
	}
	return false
}

// budgetMatches is inclusive on both bounds. A missing bound on either side
// yields no match.
func budgetMatches(budget float64, min, max *float64) bool {
	if min == nil || max == nil {
		return false
	}
	return budget >= *min && budget <= *max
}

// industryMatches checks the lead's category (and subcategory) against the
// declared industries, both directly and through the category→industry map.
func industryMatches(lead *leads.Lead, industries []string) bool {
	if len(industries) == 0 {
		return false
	}
	if containsFold(industries, lead.Category) || containsFold(industries, lead.Subcategory) {
		return true
	}
	if industry, ok := categoryIndustry[strings.ToLower(lead.Category)]; ok {
		return containsFold(industries, industry)
	}
	return false
}

func containsFold(set []string, value string) bool {
	if value == "" {
		return false
	}
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}
