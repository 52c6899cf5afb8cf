package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/leadhive/leadhive-backend/internal/leads/domain"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000

	repoTimeout = 5 * time.Second
)

// Repository is the persistence surface the lead service needs.
type Repository interface {
	Insert(ctx context.Context, req *domain.CreateLeadRequest, retentionDays int) (*domain.Lead, error)
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) (bool, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// LeadService handles business logic for leads.
type LeadService struct {
	repo          Repository
	retentionDays int
}

func NewLeadService(repo Repository, retentionDays int) *LeadService {
	return &LeadService{repo: repo, retentionDays: retentionDays}
}

// ValidationError carries a field-level message for a rejected input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Create validates and persists a new lead owned by the requester.
func (s *LeadService) Create(ctx context.Context, req *domain.CreateLeadRequest) (*domain.Lead, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	lead, err := s.repo.Insert(cctx, req, s.retentionDays)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// Get returns a single non-deleted lead.
func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	return s.repo.FindByID(cctx, id)
}

// ListOwn returns the requester's own leads.
func (s *LeadService) ListOwn(ctx context.Context, ownerID string) ([]domain.Lead, error) {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	return s.repo.FindByOwner(cctx, ownerID)
}

// Close transitions an open lead to closed. Only the owner may close it.
// The update is conditional on the lead still being open, so a close
// racing the expiry sweep resolves to whichever commits first.
func (s *LeadService) Close(ctx context.Context, ownerID, leadID string) (*domain.Lead, error) {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	lead, err := s.repo.FindByID(cctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.OwnerID != ownerID {
		return nil, domain.ErrNotLeadOwner
	}

	ok, err := s.repo.UpdateStatus(cctx, leadID, domain.StatusOpen, domain.StatusClosed)
	if err != nil {
		return nil, fmt.Errorf("close lead: %w", err)
	}
	if !ok {
		return nil, domain.ErrLeadNotOpen
	}

	return s.repo.FindByID(cctx, leadID)
}

// Delete soft-deletes the requester's own lead.
func (s *LeadService) Delete(ctx context.Context, ownerID, leadID string) error {
	cctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	lead, err := s.repo.FindByID(cctx, leadID)
	if err != nil {
		return err
	}
	if lead.OwnerID != ownerID {
		return domain.ErrNotLeadOwner
	}

	if _, err := s.repo.SoftDelete(cctx, leadID); err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

func validateCreate(req *domain.CreateLeadRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", maxTitleLen)}
	}
	if strings.TrimSpace(req.Description) == "" {
		return &ValidationError{Field: "description", Message: "is required"}
	}
	if len(req.Description) > maxDescriptionLen {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("must be at most %d characters", maxDescriptionLen)}
	}
	if strings.TrimSpace(req.Category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if strings.TrimSpace(req.Location) == "" {
		return &ValidationError{Field: "location", Message: "is required"}
	}
	if req.Budget < 0 {
		return &ValidationError{Field: "budget", Message: "must be non-negative"}
	}
	return nil
}
