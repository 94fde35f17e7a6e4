package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per key over a sliding window.
type RateLimiter interface {
	// Allow records one request for key and reports whether it fits the window. When it does
	// not, retryAfter is the time until the oldest recorded request leaves the window.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

type redisRateLimiter struct {
	client *redis.Client
	config config.RateConfig
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, cfg config.RateConfig) RateLimiter {
	return newRateLimiter(client, cfg, time.Now)
}

func newRateLimiter(client *redis.Client, cfg config.RateConfig, now func() time.Time) *redisRateLimiter {
	return &redisRateLimiter{client: client, config: cfg, now: now}
}

func RateLimitKey(key string) string {
	return "rate_limit:" + key
}

// Each request is a sorted-set member scored by its timestamp in nanoseconds:
//
//	rate_limit:checkout:<user>  ->  1700000000000000000, 1700000020000000000, ...
func (r *redisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := RateLimitKey(key)
	now := r.now()
	stamp := now.UnixNano()

	// only requests after windowStart are counted
	windowStart := now.Add(-r.config.WindowSize).UnixNano()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(stamp), Member: stamp})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, r.config.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to record request for %s: %w", key, err)
	}

	if count.Val() <= r.config.MaxRequests {
		return true, 0, nil
	}

	oldest, err := r.client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read oldest request for %s: %w", key, err)
	}

	if len(oldest) == 0 {
		return false, r.config.WindowSize, nil
	}

	retryAfter := time.Unix(0, int64(oldest[0].Score)).Add(r.config.WindowSize).Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}

	return false, retryAfter, nil
}
