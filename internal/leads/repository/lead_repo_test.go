package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-backend/internal/leads/domain"
)

var leadCols = []string{
	"id", "owner_id", "title", "description", "category", "subcategory",
	"budget", "location", "status", "created_at", "expires_at", "deleted_at", "archived",
}

func leadRow(rows *pgxmock.Rows, id, status string, createdAt time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, "requester-1", "Fix my roof", "Two loose tiles", "construction", nil,
		400.0, "Leeds", status, createdAt, createdAt.AddDate(0, 0, 30), nil, false,
	)
}

func TestLeadRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLeadRepository(mock)

	rows := leadRow(pgxmock.NewRows(leadCols), "lead-1", domain.StatusOpen, time.Now())
	mock.ExpectQuery(`insert into leads`).
		WithArgs(
			pgxmock.AnyArg(), "requester-1", "Fix my roof", "Two loose tiles",
			"construction", "", 400.0, "Leeds", domain.StatusOpen, pgxmock.AnyArg(),
		).
		WillReturnRows(rows)

	lead, err := repo.Insert(context.Background(), &domain.CreateLeadRequest{
		OwnerID:     "requester-1",
		Title:       "Fix my roof",
		Description: "Two loose tiles",
		Category:    "construction",
		Budget:      400,
		Location:    "Leeds",
	}, 30)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, lead.Status)
	assert.Empty(t, lead.Subcategory)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLeadRepository(mock)

	t.Run("found", func(t *testing.T) {
		rows := leadRow(pgxmock.NewRows(leadCols), "lead-1", domain.StatusOpen, time.Now())
		mock.ExpectQuery(`(?s)select .* from leads`).
			WithArgs("lead-1").
			WillReturnRows(rows)

		lead, err := repo.FindByID(context.Background(), "lead-1")
		require.NoError(t, err)
		assert.Equal(t, "lead-1", lead.ID)
	})

	t.Run("missing maps to ErrLeadNotFound", func(t *testing.T) {
		mock.ExpectQuery(`(?s)select .* from leads`).
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindByID(context.Background(), "ghost")
		assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindOpen(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLeadRepository(mock)

	now := time.Now()
	rows := pgxmock.NewRows(leadCols)
	leadRow(rows, "lead-2", domain.StatusOpen, now)
	leadRow(rows, "lead-1", domain.StatusOpen, now.Add(-time.Hour))

	mock.ExpectQuery(`(?s)select .* from leads`).
		WithArgs(domain.StatusOpen).
		WillReturnRows(rows)

	open, err := repo.FindOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "lead-2", open[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLeadRepository(mock)

	t.Run("conditional update wins", func(t *testing.T) {
		mock.ExpectExec(`update leads`).
			WithArgs("lead-1", domain.StatusOpen, domain.StatusClosed).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.UpdateStatus(context.Background(), "lead-1", domain.StatusOpen, domain.StatusClosed)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("status moved on, update is a no-op", func(t *testing.T) {
		mock.ExpectExec(`update leads`).
			WithArgs("lead-1", domain.StatusOpen, domain.StatusInProgress).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.UpdateStatus(context.Background(), "lead-1", domain.StatusOpen, domain.StatusInProgress)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_ExpireOverdue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLeadRepository(mock)

	now := time.Now().UTC()

	t.Run("bulk transition reports count", func(t *testing.T) {
		mock.ExpectExec(`update leads`).
			WithArgs(domain.StatusOpen, domain.StatusExpired, now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 3))

		n, err := repo.ExpireOverdue(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("second pass matches nothing", func(t *testing.T) {
		mock.ExpectExec(`update leads`).
			WithArgs(domain.StatusOpen, domain.StatusExpired, now).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		n, err := repo.ExpireOverdue(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_SoftDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLeadRepository(mock)

	mock.ExpectExec(`update leads`).
		WithArgs("lead-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.SoftDelete(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}
