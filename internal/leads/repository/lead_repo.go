package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadhive/leadhive-backend/internal/leads/domain"
)

// pool is the minimal pgx pool surface the repository needs. Satisfied by
// *pgxpool.Pool in production and pgxmock in tests.
type pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LeadRepository handles Postgres operations for leads.
type LeadRepository struct {
	db pool
}

func NewLeadRepository(db pool) *LeadRepository {
	return &LeadRepository{db: db}
}

const leadColumns = `id, owner_id, title, description, category, subcategory, budget, location, status, created_at, expires_at, deleted_at, archived`

// Insert creates a new lead in status open with an expiry window of
// retentionDays from now.
func (r *LeadRepository) Insert(ctx context.Context, req *domain.CreateLeadRequest, retentionDays int) (*domain.Lead, error) {
	const q = `
insert into leads (id, owner_id, title, description, category, subcategory, budget, location, status, expires_at)
values ($1, $2, $3, $4, $5, nullif($6,''), $7, $8, $9, $10)
returning ` + leadColumns + `;
`
	now := time.Now().UTC()
	row := r.db.QueryRow(ctx, q,
		uuid.New().String(),
		req.OwnerID,
		req.Title,
		req.Description,
		req.Category,
		req.Subcategory,
		req.Budget,
		req.Location,
		domain.StatusOpen,
		now.AddDate(0, 0, retentionDays),
	)

	lead, err := scanLead(row)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

// FindByID returns a lead by ID. Soft-deleted leads are excluded from
// every read path, this one included.
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	const q = `
select ` + leadColumns + `
from leads
where id = $1 and deleted_at is null;
`
	lead, err := scanLead(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

// FindOpen returns every lead that is open, not soft-deleted and not yet
// past its expiry timestamp. This is the candidate set for ranking.
func (r *LeadRepository) FindOpen(ctx context.Context) ([]domain.Lead, error) {
	const q = `
select ` + leadColumns + `
from leads
where status = $1 and deleted_at is null and expires_at > now()
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, domain.StatusOpen)
	if err != nil {
		return nil, fmt.Errorf("find open leads: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// FindByOwner returns the requester's own non-deleted leads, newest first.
func (r *LeadRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Lead, error) {
	const q = `
select ` + leadColumns + `
from leads
where owner_id = $1 and deleted_at is null
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find leads by owner: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// UpdateStatus performs a conditional status transition. It reports false
// when the lead was not in expectedStatus anymore: whichever conditional
// update commits first wins, later ones are no-ops.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) (bool, error) {
	const q = `
update leads
set status = $3
where id = $1 and status = $2 and deleted_at is null;
`
	tag, err := r.db.Exec(ctx, q, id, expectedStatus, newStatus)
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SoftDelete marks the lead deleted without removing the row; proposals
// keep referencing it for history.
func (r *LeadRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	const q = `
update leads
set deleted_at = now()
where id = $1 and deleted_at is null;
`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("soft delete lead: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ExpireOverdue transitions every open lead past its expiry timestamp to
// expired/archived in a single conditional update. A lead already moved by
// a concurrent sweep or a user action is simply not matched again, which
// makes the sweep idempotent.
func (r *LeadRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	const q = `
update leads
set status = $2, archived = true
where status = $1 and expires_at <= $3 and deleted_at is null;
`
	tag, err := r.db.Exec(ctx, q, domain.StatusOpen, domain.StatusExpired, now)
	if err != nil {
		return 0, fmt.Errorf("expire overdue leads: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var l domain.Lead
	var subcategory *string
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Category, &subcategory,
		&l.Budget, &l.Location, &l.Status, &l.CreatedAt, &l.ExpiresAt,
		&l.DeletedAt, &l.Archived,
	)
	if err != nil {
		return nil, err
	}
	if subcategory != nil {
		l.Subcategory = *subcategory
	}
	return &l, nil
}

func collectLeads(rows pgx.Rows) ([]domain.Lead, error) {
	out := make([]domain.Lead, 0, 16)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lead)
	}
	return out, rows.Err()
}
