package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeSlot implements a sliding-window counter over a Redis sorted set. Each
// admitted request is stored with its timestamp as the score; entries older
// than the window are trimmed before counting.
func (l *Limiter) takeSlot(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixMicro()

	client := l.cache.Client()
	pipe := client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to execute rate limit check: %w", err)
	}

	if int(countCmd.Val()) >= max {
		return false, nil
	}

	// Microsecond timestamps keep members unique under rapid requests.
	nowMicro := now.UnixMicro()
	err := client.ZAdd(ctx, key, redis.Z{
		Score:  float64(nowMicro),
		Member: strconv.FormatInt(nowMicro, 10),
	}).Err()
	if err != nil {
		return false, fmt.Errorf("failed to record rate limit entry: %w", err)
	}

	// Expire idle keys a little past the window so Redis reclaims them.
	if err := client.Expire(ctx, key, window+time.Minute).Err(); err != nil {
		return true, nil
	}

	return true, nil
}

// Count returns the number of requests currently inside the window for
// (role, identity) without recording a new one.
func (l *Limiter) Count(ctx context.Context, key string, window time.Duration) (int, error) {
	windowStart := time.Now().Add(-window).UnixMicro()

	count, err := l.cache.ZCount(ctx, key, strconv.FormatInt(windowStart, 10), "+inf")
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to count rate limit entries: %w", err)
	}

	return int(count), nil
}
