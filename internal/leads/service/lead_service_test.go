package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhive/leadhive-backend/internal/leads/domain"
)

type fakeRepo struct {
	byID   map[string]*domain.Lead
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*domain.Lead)}
}

func (f *fakeRepo) Insert(ctx context.Context, req *domain.CreateLeadRequest, retentionDays int) (*domain.Lead, error) {
	f.nextID++
	now := time.Now()
	l := &domain.Lead{
		ID:          string(rune('a' + f.nextID - 1)),
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Budget:      req.Budget,
		Location:    req.Location,
		Status:      domain.StatusOpen,
		CreatedAt:   now,
		ExpiresAt:   now.AddDate(0, 0, retentionDays),
	}
	f.byID[l.ID] = l
	return l, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	l, ok := f.byID[id]
	if !ok || l.DeletedAt != nil {
		return nil, domain.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeRepo) FindByOwner(ctx context.Context, ownerID string) ([]domain.Lead, error) {
	out := []domain.Lead{}
	for _, l := range f.byID {
		if l.OwnerID == ownerID && l.DeletedAt == nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string) (bool, error) {
	l, ok := f.byID[id]
	if !ok || l.Status != expectedStatus || l.DeletedAt != nil {
		return false, nil
	}
	l.Status = newStatus
	return true, nil
}

func (f *fakeRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	l, ok := f.byID[id]
	if !ok || l.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	l.DeletedAt = &now
	return true, nil
}

func validRequest() *domain.CreateLeadRequest {
	return &domain.CreateLeadRequest{
		OwnerID:     "requester-1",
		Title:       "Fix my roof",
		Description: "Two loose tiles after the storm",
		Category:    "construction",
		Budget:      400,
		Location:    "Leeds",
	}
}

func TestCreate(t *testing.T) {
	t.Run("creates open lead with retention window", func(t *testing.T) {
		svc := NewLeadService(newFakeRepo(), 30)

		lead, err := svc.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOpen, lead.Status)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), lead.ExpiresAt, time.Minute)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc := NewLeadService(newFakeRepo(), 30)

		cases := []struct {
			name   string
			mutate func(*domain.CreateLeadRequest)
			field  string
		}{
			{"missing title", func(r *domain.CreateLeadRequest) { r.Title = " " }, "title"},
			{"title too long", func(r *domain.CreateLeadRequest) { r.Title = strings.Repeat("x", 201) }, "title"},
			{"missing description", func(r *domain.CreateLeadRequest) { r.Description = "" }, "description"},
			{"missing category", func(r *domain.CreateLeadRequest) { r.Category = "" }, "category"},
			{"missing location", func(r *domain.CreateLeadRequest) { r.Location = "" }, "location"},
			{"negative budget", func(r *domain.CreateLeadRequest) { r.Budget = -1 }, "budget"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := validRequest()
				tc.mutate(req)

				_, err := svc.Create(context.Background(), req)
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.field, vErr.Field)
			})
		}
	})

	t.Run("zero budget is allowed", func(t *testing.T) {
		svc := NewLeadService(newFakeRepo(), 30)
		req := validRequest()
		req.Budget = 0

		_, err := svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestClose(t *testing.T) {
	t.Run("owner closes open lead", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewLeadService(repo, 30)

		lead, err := svc.Create(context.Background(), validRequest())
		require.NoError(t, err)

		closed, err := svc.Close(context.Background(), "requester-1", lead.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusClosed, closed.Status)
	})

	t.Run("non-owner cannot close", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewLeadService(repo, 30)

		lead, err := svc.Create(context.Background(), validRequest())
		require.NoError(t, err)

		_, err = svc.Close(context.Background(), "intruder", lead.ID)
		assert.ErrorIs(t, err, domain.ErrNotLeadOwner)
		assert.Equal(t, domain.StatusOpen, repo.byID[lead.ID].Status)
	})

	t.Run("closing twice fails", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewLeadService(repo, 30)

		lead, err := svc.Create(context.Background(), validRequest())
		require.NoError(t, err)

		_, err = svc.Close(context.Background(), "requester-1", lead.ID)
		require.NoError(t, err)

		_, err = svc.Close(context.Background(), "requester-1", lead.ID)
		assert.ErrorIs(t, err, domain.ErrLeadNotOpen)
	})
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewLeadService(repo, 30)

	lead, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "requester-1", lead.ID))

	// soft-deleted leads disappear from every read path
	_, err = svc.Get(context.Background(), lead.ID)
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)

	list, err := svc.ListOwn(context.Background(), "requester-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
