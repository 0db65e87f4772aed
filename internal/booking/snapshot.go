package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/metrics"
)

// SnapshotProvider returns the non-cancelled bookings of one restaurant day.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, tenantID, restaurantID int64, date string) ([]availability.Booking, error)
}

// Invalidator drops any cached copy of a restaurant day.
type Invalidator interface {
	Invalidate(ctx context.Context, tenantID, restaurantID int64, date string)
}

type kvStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedSnapshots keeps day snapshots in Redis in front of another provider.
// Redis failures are logged and fall through to the wrapped provider.
type CachedSnapshots struct {
	next    SnapshotProvider
	store   kvStore
	ttl     time.Duration
	log     *zap.Logger
	metrics *metrics.Registry
}

func NewCachedSnapshots(next SnapshotProvider, rdb *redis.Client, ttl time.Duration, log *zap.Logger, m *metrics.Registry) *CachedSnapshots {
	return &CachedSnapshots{next: next, store: rdb, ttl: ttl, log: log, metrics: m}
}

func snapshotKey(tenantID, restaurantID int64, date string) string {
	return fmt.Sprintf("ordertable:snapshot:%d:%d:%s", tenantID, restaurantID, date)
}

func (c *CachedSnapshots) Snapshot(ctx context.Context, tenantID, restaurantID int64, date string) ([]availability.Booking, error) {
	key := snapshotKey(tenantID, restaurantID, date)

	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var day []availability.Booking
		jsonErr := json.Unmarshal(raw, &day)
		if jsonErr == nil {
			c.metrics.RecordCacheLookup(true)
			return day, nil
		}
		c.log.Warn("discarding unreadable snapshot", zap.String("key", key), zap.Error(jsonErr))
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("snapshot cache read failed", zap.String("key", key), zap.Error(err))
	}
	c.metrics.RecordCacheLookup(false)

	day, err := c.next.Snapshot(ctx, tenantID, restaurantID, date)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(day)
	if err != nil {
		return day, nil
	}
	if err := c.store.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("snapshot cache write failed", zap.String("key", key), zap.Error(err))
	}
	return day, nil
}

func (c *CachedSnapshots) Invalidate(ctx context.Context, tenantID, restaurantID int64, date string) {
	key := snapshotKey(tenantID, restaurantID, date)
	if err := c.store.Del(ctx, key).Err(); err != nil {
		c.log.Warn("snapshot cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
