package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	leads "github.com/leadhive/leadhive-backend/internal/leads/domain"
	"github.com/leadhive/leadhive-backend/internal/notify"
	"github.com/leadhive/leadhive-backend/internal/proposals/domain"
)

const (
	maxProposalLen = 5000
	repoTimeout    = 5 * time.Second
)

// Repository is the persistence surface for proposals.
type Repository interface {
	Insert(ctx context.Context, leadID, providerID, text string) (*domain.Proposal, error)
	FindByID(ctx context.Context, id string) (*domain.Proposal, error)
	UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string, contactDetails *string) (bool, error)
	ListByLead(ctx context.Context, leadID string) ([]domain.Proposal, error)
	ListByProvider(ctx context.Context, providerID string) ([]domain.Proposal, error)
}

// LeadSource is the slice of the lead repository the proposal lifecycle
// needs: existence/status checks on submit and the optional advance to
// in_progress on accept.
type LeadSource interface {
	FindByID(ctx context.Context, id string) (*leads.Lead, error)
	UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) (bool, error)
}

// ProposalService governs the proposal lifecycle: submission, uniqueness,
// and the pending→accepted/rejected transition that gates the exchange of
// contact details.
type ProposalService struct {
	repo     Repository
	leads    LeadSource
	notifier notify.Notifier
}

func NewProposalService(repo Repository, leadSource LeadSource, notifier notify.Notifier) *ProposalService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &ProposalService{repo: repo, leads: leadSource, notifier: notifier}
}

// Submit creates a pending proposal from a provider on an open lead. No
// contact details are exchanged at this point.
func (s *ProposalService) Submit(ctx context.Context, providerID, leadID, text string) (*domain.Proposal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "proposal_text", Message: "is required"}
	}
	if len(text) > maxProposalLen {
		return nil, &ValidationError{Field: "proposal_text", Message: fmt.Sprintf("must be at most %d characters", maxProposalLen)}
	}

	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	lead, err := s.leads.FindByID(cctx, leadID)
	if errors.Is(err, leads.ErrLeadNotFound) {
		return nil, domain.ErrLeadNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("submit proposal: %w", err)
	}
	if !lead.IsOpen() {
		return nil, domain.ErrLeadNotAvailable
	}

	// The unique constraint on (lead_id, provider_id) is the authoritative
	// duplicate check; concurrent submits race safely against it.
	proposal, err := s.repo.Insert(cctx, leadID, providerID, text)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{
		Type:       notify.EventProposalSubmitted,
		LeadID:     leadID,
		ProposalID: proposal.ID,
		ActorID:    providerID,
	})

	return proposal, nil
}

// Accept transitions a pending proposal to accepted and stores the
// requester-supplied contact details on it. This is the only path by which
// contact details are ever set or exposed to the provider.
func (s *ProposalService) Accept(ctx context.Context, requesterID, leadID, proposalID, contactDetails string) (*domain.Proposal, error) {
	contactDetails = strings.TrimSpace(contactDetails)
	if contactDetails == "" {
		return nil, &ValidationError{Field: "contact_details", Message: "is required"}
	}

	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	proposal, err := s.authorize(cctx, requesterID, leadID, proposalID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.UpdateStatus(cctx, proposal.ID, domain.StatusPending, domain.StatusAccepted, &contactDetails)
	if err != nil {
		return nil, fmt.Errorf("accept proposal: %w", err)
	}
	if !ok {
		// Lost the race against another accept/reject, or the proposal was
		// already terminal. Refusing here is what prevents a double-submit
		// from overwriting contact details.
		return nil, domain.ErrInvalidState
	}

	// Best effort: advance the lead so it drops out of provider feeds. The
	// proposal transition has already committed, so a miss here (lead
	// closed or expired meanwhile) is logged, not surfaced.
	if moved, err := s.leads.UpdateStatus(cctx, leadID, leads.StatusOpen, leads.StatusInProgress); err != nil {
		log.Printf("[proposals] advance lead %s after accept: %v", leadID, err)
	} else if !moved {
		log.Printf("[proposals] lead %s no longer open after accept, leaving status as is", leadID)
	}

	s.notifier.Notify(ctx, notify.Event{
		Type:       notify.EventProposalAccepted,
		LeadID:     leadID,
		ProposalID: proposal.ID,
		ActorID:    requesterID,
	})

	return s.repo.FindByID(cctx, proposal.ID)
}

// Reject transitions a pending proposal to rejected. Contact details remain
// empty permanently; rejected proposals are retained for history.
func (s *ProposalService) Reject(ctx context.Context, requesterID, leadID, proposalID string) (*domain.Proposal, error) {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	proposal, err := s.authorize(cctx, requesterID, leadID, proposalID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.UpdateStatus(cctx, proposal.ID, domain.StatusPending, domain.StatusRejected, nil)
	if err != nil {
		return nil, fmt.Errorf("reject proposal: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidState
	}

	s.notifier.Notify(ctx, notify.Event{
		Type:       notify.EventProposalRejected,
		LeadID:     leadID,
		ProposalID: proposal.ID,
		ActorID:    requesterID,
	})

	return s.repo.FindByID(cctx, proposal.ID)
}

// ListForLead returns every proposal on the requester's own lead.
func (s *ProposalService) ListForLead(ctx context.Context, requesterID, leadID string) ([]domain.Proposal, error) {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	lead, err := s.leads.FindByID(cctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.OwnerID != requesterID {
		return nil, domain.ErrNotAuthorized
	}

	return s.repo.ListByLead(cctx, leadID)
}

// ListOwn returns the provider's own proposals.
func (s *ProposalService) ListOwn(ctx context.Context, providerID string) ([]domain.Proposal, error) {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	return s.repo.ListByProvider(cctx, providerID)
}

// authorize loads the proposal and verifies the caller owns the lead it
// belongs to, then fast-fails on an already-terminal status. The terminal
// check is repeated by the conditional update, which is what makes the
// race safe; this one just gives a clean error without burning a write.
func (s *ProposalService) authorize(ctx context.Context, requesterID, leadID, proposalID string) (*domain.Proposal, error) {
	lead, err := s.leads.FindByID(ctx, leadID)
	if errors.Is(err, leads.ErrLeadNotFound) {
		return nil, domain.ErrProposalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load lead: %w", err)
	}
	if lead.OwnerID != requesterID {
		log.Printf("[proposals] audit: user %s attempted to act on proposal %s of lead %s owned by %s",
			requesterID, proposalID, leadID, lead.OwnerID)
		return nil, domain.ErrNotAuthorized
	}

	proposal, err := s.repo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.LeadID != leadID {
		return nil, domain.ErrProposalNotFound
	}
	if domain.IsTerminal(proposal.Status) {
		return nil, domain.ErrInvalidState
	}

	return proposal, nil
}

// ValidationError carries a field-level message for a rejected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
