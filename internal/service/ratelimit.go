package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit acquires a per-user, per-action cooldown slot. It
// returns false when the user is still inside the cooldown window. A nil
// client disables limiting, so local setups run without Redis.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:user:%s:%s", userID, action)
	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	return wasSet, nil
}

// ClearRateLimit releases a cooldown early, used when the guarded action
// failed after the slot was taken.
func ClearRateLimit(ctx context.Context, rdb *redis.Client, userID, action string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:user:%s:%s", userID, action)
	return rdb.Del(ctx, key).Err()
}
