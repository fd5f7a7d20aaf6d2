package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"claims-dashboard/internal/core/cache"
	"claims-dashboard/internal/features/claims/domain"
)

const snapshotCacheKey = "claims:snapshot"

// RedisSnapshotRepository implements ports.SnapshotRepository on top of the
// cache port. It stores the latest normalized claim list so a restarted
// service can serve last-known-good data before its first fetch completes.
type RedisSnapshotRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisSnapshotRepository creates a new RedisSnapshotRepository.
// A ttl of 0 keeps the snapshot until the next Save.
func NewRedisSnapshotRepository(c cache.Cache, ttl time.Duration) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Save stores the claim list, replacing any previous snapshot.
func (r *RedisSnapshotRepository) Save(ctx context.Context, claims []domain.Claim) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.cache.Set(ctx, snapshotCacheKey, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored claim list, or (nil, nil) when no snapshot exists.
func (r *RedisSnapshotRepository) Load(ctx context.Context) ([]domain.Claim, error) {
	data, err := r.cache.Get(ctx, snapshotCacheKey)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var claims []domain.Claim
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return claims, nil
}
