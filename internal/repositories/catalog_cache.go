package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"popup-registration-platform/internal/models"

	"github.com/redis/go-redis/v9"
)

// PassStore is the catalog lookup the cache sits in front of
type PassStore interface {
	GetByPopup(ctx context.Context, popupID int) ([]*models.Pass, error)
	GetByIDs(ctx context.Context, popupID int, passIDs []int) ([]*models.Pass, error)
}

// CachedPassRepository is a read-through Redis cache for popup catalogs.
// Redis failures are logged and the request falls through to the store.
type CachedPassRepository struct {
	store  PassStore
	client *redis.Client
	ttl    time.Duration
}

// NewCachedPassRepository wraps a pass store with a Redis cache
func NewCachedPassRepository(store PassStore, client *redis.Client, ttl time.Duration) *CachedPassRepository {
	return &CachedPassRepository{store: store, client: client, ttl: ttl}
}

func catalogKey(popupID int) string {
	return fmt.Sprintf("popup:%d:passes", popupID)
}

// GetByPopup returns the cached catalog, loading and caching it on a miss
func (r *CachedPassRepository) GetByPopup(ctx context.Context, popupID int) ([]*models.Pass, error) {
	key := catalogKey(popupID)

	cached, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var passes []*models.Pass
		decodeErr := json.Unmarshal(cached, &passes)
		if decodeErr == nil {
			return passes, nil
		}
		log.Printf("Discarding unreadable catalog cache entry %s: %v", key, decodeErr)
	case !errors.Is(err, redis.Nil):
		log.Printf("Catalog cache read failed for popup %d: %v", popupID, err)
	}

	passes, err := r.store.GetByPopup(ctx, popupID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(passes)
	if err != nil {
		log.Printf("Failed to encode catalog for popup %d: %v", popupID, err)
		return passes, nil
	}

	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		log.Printf("Catalog cache write failed for popup %d: %v", popupID, err)
	}

	return passes, nil
}

// GetByIDs reads through to the store; only the on-sale catalog is cached
func (r *CachedPassRepository) GetByIDs(ctx context.Context, popupID int, passIDs []int) ([]*models.Pass, error) {
	return r.store.GetByIDs(ctx, popupID, passIDs)
}

// Invalidate drops the cached catalog of a popup
func (r *CachedPassRepository) Invalidate(ctx context.Context, popupID int) error {
	if err := r.client.Del(ctx, catalogKey(popupID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
