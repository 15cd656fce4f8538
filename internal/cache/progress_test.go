// internal/cache/progress_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-engine/internal/common/database"
	"review-engine/internal/common/logger"
	"review-engine/internal/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ProgressCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })

	return NewProgressCache(client, ttl, logger.NewTestLogger(t)), mr
}

func sampleReport() *models.ProgressReport {
	return &models.ProgressReport{
		Finished:   false,
		TotalCount: 2,
		Remaining: []models.ApplicantProgress{
			{ApplicantID: "a1", Alias: "bold-otter-teal"},
		},
		Completed: []models.ApplicantProgress{
			{ApplicantID: "a2", Alias: "calm-heron-jade", Finished: true},
		},
	}
}

func TestSetThenGetRoundTrips(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	assert.Nil(t, c.Get(ctx))

	c.Set(ctx, sampleReport())
	got := c.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, sampleReport(), got)
}

func TestSnapshotExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	c.Set(ctx, sampleReport())
	require.NotNil(t, c.Get(ctx))

	mr.FastForward(2 * time.Second)
	assert.Nil(t, c.Get(ctx))
}

func TestInvalidateDropsSnapshot(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, sampleReport())
	require.NotNil(t, c.Get(ctx))

	c.Invalidate(ctx)
	assert.Nil(t, c.Get(ctx))
}

func TestCorruptSnapshotDegradesToMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("progress:report", "{not json"))
	assert.Nil(t, c.Get(context.Background()))
}

func TestNilCacheIsPermanentMiss(t *testing.T) {
	var c *ProgressCache
	ctx := context.Background()

	assert.Nil(t, c.Get(ctx))
	c.Set(ctx, sampleReport())
	c.Invalidate(ctx)
}
