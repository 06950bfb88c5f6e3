// File: services/booking/locker.go
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotLocker claims a calendar+slot pair for the duration of a booking
// attempt, so two submissions racing for the same instant serialize.
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string)
}

// RedisSlotLocker implements SlotLocker with SETNX-style claims.
type RedisSlotLocker struct {
	Client *redis.Client
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.Client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire slot claim: %w", err)
	}
	return ok, nil
}

func (l *RedisSlotLocker) Release(ctx context.Context, key string) {
	// The TTL reclaims the key if this fails.
	l.Client.Del(ctx, key)
}

// slotClaimKey names the claim for one start instant on one calendar.
func slotClaimKey(calendarID string, start time.Time) string {
	return fmt.Sprintf("slotclaim:%s:%d", calendarID, start.UTC().Unix())
}
