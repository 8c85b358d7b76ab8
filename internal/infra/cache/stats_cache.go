package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	domain "github.com/platefleet/scheduling/internal/domain/schedule"
)

// StatisticsCache is a read-through cache for branch shift statistics.
// Writes bump a per-branch generation counter instead of enumerating keys,
// so stale aggregates die on the next read.
type StatisticsCache interface {
	Get(ctx context.Context, branchID uint, from, to time.Time) (*domain.Statistics, bool)
	Set(ctx context.Context, branchID uint, from, to time.Time, stats *domain.Statistics)
	BumpBranch(ctx context.Context, branchID uint)
}

// --------------------------------------------------
// Redis implementation
// --------------------------------------------------

type RedisStatisticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatisticsCache(client *redis.Client, ttl time.Duration) *RedisStatisticsCache {
	return &RedisStatisticsCache{client: client, ttl: ttl}
}

func (c *RedisStatisticsCache) generation(ctx context.Context, branchID uint) int64 {
	gen, err := c.client.Get(ctx, fmt.Sprintf("stats:gen:branch:%d", branchID)).Int64()
	if err != nil {
		return 0
	}
	return gen
}

func (c *RedisStatisticsCache) key(ctx context.Context, branchID uint, from, to time.Time) string {
	return fmt.Sprintf(
		"stats:branch:%d:%d:%s:%s",
		branchID,
		c.generation(ctx, branchID),
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
}

func (c *RedisStatisticsCache) Get(
	ctx context.Context,
	branchID uint,
	from, to time.Time,
) (*domain.Statistics, bool) {

	raw, err := c.client.Get(ctx, c.key(ctx, branchID, from, to)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("statistics cache read failed")
		return nil, false
	}

	var stats domain.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *RedisStatisticsCache) Set(
	ctx context.Context,
	branchID uint,
	from, to time.Time,
	stats *domain.Statistics,
) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(ctx, branchID, from, to), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("statistics cache write failed")
	}
}

func (c *RedisStatisticsCache) BumpBranch(ctx context.Context, branchID uint) {
	if err := c.client.Incr(ctx, fmt.Sprintf("stats:gen:branch:%d", branchID)).Err(); err != nil {
		log.Warn().Err(err).Msg("statistics cache invalidation failed")
	}
}

// --------------------------------------------------
// No-op fallback (redis not configured)
// --------------------------------------------------

type NoopStatisticsCache struct{}

func NewNoopStatisticsCache() *NoopStatisticsCache { return &NoopStatisticsCache{} }

func (NoopStatisticsCache) Get(context.Context, uint, time.Time, time.Time) (*domain.Statistics, bool) {
	return nil, false
}

func (NoopStatisticsCache) Set(context.Context, uint, time.Time, time.Time, *domain.Statistics) {}

func (NoopStatisticsCache) BumpBranch(context.Context, uint) {}

var (
	_ StatisticsCache = (*RedisStatisticsCache)(nil)
	_ StatisticsCache = (*NoopStatisticsCache)(nil)
)
