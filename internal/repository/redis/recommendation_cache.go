package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rei-naissance/Huggle-Bundler/domain"
)

// RecommendationCache keeps rule-based candidate lists for a short TTL so
// repeated recommend calls for the same store do not re-read the product
// table. Enriched results are never cached; the AI overlay runs per request.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(storeID string, numBundles int) string {
	return fmt.Sprintf("bundler:reco:%s:%d", storeID, numBundles)
}

// Get returns the cached candidates, or (nil, nil) on a cache miss.
func (r *RecommendationCache) Get(ctx context.Context, storeID string, numBundles int) ([]domain.BundleCandidate, error) {
	val, err := r.client.Get(ctx, cacheKey(storeID, numBundles)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recommendations from Redis: %w", err)
	}

	var candidates []domain.BundleCandidate
	if err := json.Unmarshal([]byte(val), &candidates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return candidates, nil
}

func (r *RecommendationCache) Set(ctx context.Context, storeID string, numBundles int, candidates []domain.BundleCandidate) error {
	jsonData, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	err = r.client.Set(ctx, cacheKey(storeID, numBundles), jsonData, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store recommendations in Redis: %w", err)
	}

	return nil
}
