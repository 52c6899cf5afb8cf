package domain

import "time"

// Lead represents a requester's posted service need.
type Lead struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory,omitempty"`
	Budget      float64    `json:"budget"`
	Location    string     `json:"location"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	Archived    bool       `json:"archived"`
}

// Lead status constants. Transitions are monotonic toward a terminal
// state (closed/expired) and never revert.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
	StatusExpired    = "expired"
)

// IsOpen reports whether the lead can still receive proposals.
func (l *Lead) IsOpen() bool {
	return l.Status == StatusOpen && l.DeletedAt == nil
}

// CreateLeadRequest represents data needed to post a new lead.
type CreateLeadRequest struct {
	OwnerID     string
	Title       string
	Description string
	Category    string
	Subcategory string
	Budget      float64
	Location    string
}
