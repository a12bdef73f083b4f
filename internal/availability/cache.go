package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shutterbook/internal/metrics"
	"shutterbook/internal/slots"
)

// slotCache caches computed slot lists in Redis, keyed by photographer, date
// and duration. A nil cache is a no-op. Entries are short-lived and
// advisory, like the reads they memoize; booking writes do not invalidate
// them, the TTL does.
type slotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// UseRedisCache enables slot-list caching with the given TTL.
func (s *Service) UseRedisCache(client *redis.Client, ttl time.Duration) {
	if client == nil || ttl <= 0 {
		return
	}
	s.cache = &slotCache{redis: client, ttl: ttl}
}

func cacheKey(photographerID int64, date time.Time, duration time.Duration) string {
	return fmt.Sprintf("slots:%d:%s:%d", photographerID, date.Format("2006-01-02"), int(duration/time.Minute))
}

func (c *slotCache) read(ctx context.Context, photographerID int64, date time.Time, duration time.Duration) ([]slots.Slot, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.redis.Get(ctx, cacheKey(photographerID, date, duration)).Result()
	if err != nil {
		metrics.IncCacheLookup(false)
		return nil, false
	}
	var cached []slots.Slot
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		metrics.IncCacheLookup(false)
		return nil, false
	}
	metrics.IncCacheLookup(true)
	return cached, true
}

func (c *slotCache) write(ctx context.Context, photographerID int64, date time.Time, duration time.Duration, val []slots.Slot) {
	if c == nil {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, cacheKey(photographerID, date, duration), data, c.ttl).Err()
}
