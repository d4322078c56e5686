package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

const statsTTL = 5 * time.Minute

// StatsCache keeps the per-user dashboard summary in Redis for a short
// TTL. It is strictly an accelerator: every failure is reported to the
// caller, which falls back to the repository.
type StatsCache struct {
	rdb *redis.Client
}

func NewStatsCache(rdb *redis.Client) ports.StatsCache {
	return &StatsCache{rdb: rdb}
}

func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

func (c *StatsCache) GetDashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error) {
	raw, err := c.rdb.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *StatsCache) SetDashboard(ctx context.Context, userID uuid.UUID, stats *domain.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey(userID), raw, statsTTL).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, statsKey(userID)).Err()
}

func statsKey(userID uuid.UUID) string {
	return "dashboard_stats:" + userID.String()
}
