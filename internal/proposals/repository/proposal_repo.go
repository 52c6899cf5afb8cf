package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/leadhive/leadhive-backend/internal/proposals/domain"
)

// ProposalRepository handles PostgreSQL operations for proposals. The
// proposals table carries a unique constraint on (lead_id, provider_id),
// which is what enforces the one-proposal-per-pair invariant under
// concurrent submits.
type ProposalRepository struct {
	db *sql.DB
}

func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

const proposalColumns = `id, lead_id, provider_id, proposal_text, status, contact_details, created_at`

// Insert creates a pending proposal. A unique violation on
// (lead_id, provider_id) maps to ErrDuplicateProposal.
func (r *ProposalRepository) Insert(ctx context.Context, leadID, providerID, text string) (*domain.Proposal, error) {
	query := `
		INSERT INTO proposals (id, lead_id, provider_id, proposal_text, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + proposalColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), leadID, providerID, text, domain.StatusPending)

	p, err := scanProposal(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, domain.ErrDuplicateProposal
		}
		return nil, fmt.Errorf("insert proposal: %w", err)
	}
	return p, nil
}

// FindByID returns a proposal by ID.
func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`

	p, err := scanProposal(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProposalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	return p, nil
}

// UpdateStatus performs the conditional pending→terminal transition.
// contactDetails is written only when non-nil (the accept path). It reports
// false when the proposal was no longer in expectedStatus; under a
// concurrent accept/reject exactly one caller wins and the other sees false.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string, contactDetails *string) (bool, error) {
	query := `
		UPDATE proposals
		SET status = $3, contact_details = COALESCE($4, contact_details)
		WHERE id = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, query, id, expectedStatus, newStatus, contactDetails)
	if err != nil {
		return false, fmt.Errorf("update proposal status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update proposal status: rows affected: %w", err)
	}
	return n == 1, nil
}

// ListByLead returns every proposal on a lead, newest first. Rejected
// proposals are retained for history, so they show up here too.
func (r *ProposalRepository) ListByLead(ctx context.Context, leadID string) ([]domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE lead_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, leadID)
}

// ListByProvider returns every proposal a provider has submitted, newest first.
func (r *ProposalRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE provider_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, providerID)
}

func (r *ProposalRepository) list(ctx context.Context, query string, arg string) ([]domain.Proposal, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Proposal, 0, 8)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("list proposals: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProposal(s scanner) (*domain.Proposal, error) {
	var p domain.Proposal
	var contact sql.NullString
	err := s.Scan(&p.ID, &p.LeadID, &p.ProviderID, &p.Text, &p.Status, &contact, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.ContactDetails = contact.String
	return &p, nil
}
