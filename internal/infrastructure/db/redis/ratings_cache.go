package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

const defaultRatingsTTL = 10 * time.Minute

// RatingsCache stores per-movie rating stats as JSON.
// Key format: ratings:<movie_id>
type RatingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingsCache wraps client. A non-positive ttl falls back to ten minutes.
func NewRatingsCache(client *redis.Client, ttl time.Duration) *RatingsCache {
	if ttl <= 0 {
		ttl = defaultRatingsTTL
	}
	return &RatingsCache{client: client, ttl: ttl}
}

// Get returns (nil, nil) on a miss.
func (c *RatingsCache) Get(ctx context.Context, movieID int64) (*domain.RatingStats, error) {
	raw, err := c.client.Get(ctx, ratingsKey(movieID)).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("ratings cache get: %w", err)
	}

	stats, err := decodeStats(raw)
	if err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	cacheLookups.WithLabelValues("hit").Inc()
	return stats, nil
}

func (c *RatingsCache) Set(ctx context.Context, stats *domain.RatingStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("ratings cache encode: %w", err)
	}
	if err := c.client.Set(ctx, ratingsKey(stats.MovieID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("ratings cache set: %w", err)
	}
	return nil
}

func (c *RatingsCache) Invalidate(ctx context.Context, movieID int64) error {
	if err := c.client.Del(ctx, ratingsKey(movieID)).Err(); err != nil {
		return fmt.Errorf("ratings cache del: %w", err)
	}
	return nil
}

// Ping lets the cache act as a readiness check.
func (c *RatingsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func ratingsKey(movieID int64) string {
	return "ratings:" + strconv.FormatInt(movieID, 10)
}

func decodeStats(raw []byte) (*domain.RatingStats, error) {
	var stats domain.RatingStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("ratings cache decode: %w", err)
	}
	if stats.Counts == nil {
		stats.Counts = []domain.RatingCount{}
	}
	return &stats, nil
}
