// Package domain defines the proposal state machine.
//
// Valid status graph:
//
//	pending ──► accepted
//	    │
//	    └─────► rejected
//
// accepted and rejected are terminal; a proposal is never resubmitted
// or reopened.
package domain

import "time"

// Proposal is a provider's response to a lead. Exactly one exists per
// (lead, provider) pair.
type Proposal struct {
	ID             string    `json:"id"`
	LeadID         string    `json:"lead_id"`
	ProviderID     string    `json:"provider_id"`
	Text           string    `json:"proposal_text"`
	Status         string    `json:"status"`
	ContactDetails string    `json:"contact_details,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Proposal status constants.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// IsTerminal reports whether the status permits no further transition.
func IsTerminal(status string) bool {
	return status == StatusAccepted || status == StatusRejected
}

// CanTransition reports whether moving from → to is permitted. The only
// legal moves are pending→accepted and pending→rejected.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusAccepted || to == StatusRejected
}
