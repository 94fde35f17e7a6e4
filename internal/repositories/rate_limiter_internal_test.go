package repository

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	ctx := t.Context()
	cfg := config.RateConfig{WindowSize: time.Minute, MaxRequests: 3}
	now := time.Unix(1_700_000_000, 0)
	stamp := now.UnixNano()
	windowStart := strconv.FormatInt(now.Add(-time.Minute).UnixNano(), 10)
	key := "rate_limit:checkout:42"

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(stamp), Member: stamp}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, time.Minute).SetVal(true)
	}

	t.Run("Within window", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := newRateLimiter(client, cfg, func() time.Time { return now })
		expectPipeline(mock, 3)

		// Act
		allowed, retryAfter, err := limiter.Allow(ctx, "checkout:42")

		// Assert
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Over the limit", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := newRateLimiter(client, cfg, func() time.Time { return now })
		expectPipeline(mock, 4)

		oldest := now.Add(-20 * time.Second).UnixNano()
		mock.ExpectZRangeWithScores(key, 0, 0).SetVal([]redis.Z{{Score: float64(oldest), Member: strconv.FormatInt(oldest, 10)}})

		// Act
		allowed, retryAfter, err := limiter.Allow(ctx, "checkout:42")

		// Assert
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.InDelta(t, (40 * time.Second).Seconds(), retryAfter.Seconds(), 0.001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := newRateLimiter(client, cfg, func() time.Time { return now })
		mock.ExpectZRemRangeByScore(key, "0", windowStart).SetErr(errors.New("connection refused"))

		// Act
		allowed, _, err := limiter.Allow(ctx, "checkout:42")

		// Assert
		assert.False(t, allowed)
		assert.ErrorContains(t, err, "failed to record request")
	})
}
