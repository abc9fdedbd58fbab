package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookplace/internal/pkg/errs"
	"bookplace/internal/usecase/shared"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const availabilityKeyPrefix = "availability:"

// AvailabilityCache stores expanded unavailable-date sets keyed per offer
// and month. Writers call Invalidate after commit, so a month key only
// lives between the first read after a write and the next write (or TTL).
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

var _ shared.AvailabilityCache = (*AvailabilityCache)(nil)

func monthKey(offerID uuid.UUID, year, month int) string {
	return fmt.Sprintf("%s%s:%04d-%02d", availabilityKeyPrefix, offerID, year, month)
}

func (c *AvailabilityCache) GetMonth(ctx context.Context, offerID uuid.UUID, year, month int) ([]string, bool, error) {
	val, err := c.client.Get(ctx, monthKey(offerID, year, month)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to read availability cache")
	}

	var dates []string
	if err := json.Unmarshal([]byte(val), &dates); err != nil {
		// Corrupt entry, treat as a miss and let the writer replace it.
		return nil, false, nil
	}
	return dates, true, nil
}

func (c *AvailabilityCache) SetMonth(ctx context.Context, offerID uuid.UUID, year, month int, dates []string) error {
	data, err := json.Marshal(dates)
	if err != nil {
		return errs.Wrap(err, "failed to encode availability dates")
	}
	if err := c.client.Set(ctx, monthKey(offerID, year, month), data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to write availability cache")
	}
	return nil
}

// Invalidate drops every cached month for the offer.
func (c *AvailabilityCache) Invalidate(ctx context.Context, offerID uuid.UUID) error {
	keys, err := c.client.Keys(ctx, fmt.Sprintf("%s%s:*", availabilityKeyPrefix, offerID)).Result()
	if err != nil {
		return errs.Wrap(err, "failed to scan availability keys")
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errs.Wrap(err, "failed to drop availability keys")
	}
	return nil
}
