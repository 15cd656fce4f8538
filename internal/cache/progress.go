// internal/cache/progress.go

// Package cache holds the Redis-backed snapshot of the admin progress report.
// The report is a full scan over applicants and reviews, so dashboard polling
// is served from this snapshot and falls through to the aggregator on a miss.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"review-engine/internal/common/database"
	"review-engine/internal/common/logger"
	"review-engine/internal/common/metrics"
	"review-engine/internal/models"
)

const progressKey = "progress:report"

// ProgressCache caches the most recent progress report. A nil *ProgressCache
// is valid and behaves as a permanent miss, so callers never branch on whether
// Redis is configured.
type ProgressCache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewProgressCache(redis *database.RedisClient, ttl time.Duration, log logger.Logger) *ProgressCache {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &ProgressCache{
		redis:  redis,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "progress_cache"}),
	}
}

// Get returns the cached report, or nil on a miss. Cache failures degrade to a
// miss; the report is always recomputable.
func (c *ProgressCache) Get(ctx context.Context) *models.ProgressReport {
	if c == nil || c.redis == nil {
		return nil
	}

	raw, err := c.redis.Get(ctx, progressKey)
	if err != nil {
		metrics.ProgressCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	var report models.ProgressReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		c.logger.Warn("discarding unreadable cached report", map[string]interface{}{"error": err.Error()})
		metrics.ProgressCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.ProgressCacheHits.WithLabelValues("hit").Inc()
	return &report
}

// Set stores a freshly aggregated report under the configured TTL.
func (c *ProgressCache) Set(ctx context.Context, report *models.ProgressReport) {
	if c == nil || c.redis == nil || report == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("failed to encode progress report for cache", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.redis.Set(ctx, progressKey, string(raw), c.ttl); err != nil {
		c.logger.Warn("failed to cache progress report", map[string]interface{}{"error": err.Error()})
	}
}

// Invalidate drops the snapshot. Called after generation and after each
// completed review so admins never poll a stale partition for a full TTL.
func (c *ProgressCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, progressKey); err != nil {
		c.logger.Warn("failed to invalidate progress cache", map[string]interface{}{"error": err.Error()})
	}
}
