package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/leadhive/leadhive-backend/internal/matching/domain"
)

const prefKeyPrefix = "prefs:provider:" // prefs:provider:{provider_id}

// PreferenceRepository reads provider preference profiles from Redis. The
// profile service owns the keys and writes them; matching only reads.
type PreferenceRepository struct {
	client *redis.Client
}

func NewPreferenceRepository(client *redis.Client) *PreferenceRepository {
	return &PreferenceRepository{client: client}
}

// FindByProvider returns the provider's preference profile, or
// ErrPreferencesNotFound when the provider has never declared any.
func (r *PreferenceRepository) FindByProvider(ctx context.Context, providerID string) (*domain.PreferenceProfile, error) {
	data, err := r.client.Get(ctx, prefKeyPrefix+providerID).Result()
	if err == redis.Nil {
		return nil, domain.ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	var profile domain.PreferenceProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	profile.ProviderID = providerID

	return &profile, nil
}
