package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/skillswap/internal/config"
)

// PendingCountTTL bounds how long a cached pending-request count lives.
const PendingCountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForPendingCount generates the Redis key for a user's incoming pending
// connection requests.
func (c *RedisCache) KeyForPendingCount(userID string) string {
	return fmt.Sprintf("connections:pending:%s", userID)
}

// GetPendingCount reads the cached count. ok is false on a miss.
// A hit refreshes the TTL since the user is active.
func (c *RedisCache) GetPendingCount(ctx context.Context, userID string) (n int64, ok bool, err error) {
	key := c.KeyForPendingCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err = strconv.ParseInt(val, 10, 64)
	if err != nil {
		// corrupt entry, treat as miss
		_ = c.Client.Del(ctx, key).Err()
		return 0, false, nil
	}
	_ = c.Client.Expire(ctx, key, PendingCountTTL).Err()
	return n, true, nil
}

// SetPendingCount stores a freshly computed count with a TTL.
func (c *RedisCache) SetPendingCount(ctx context.Context, userID string, n int64) error {
	return c.Client.Set(ctx, c.KeyForPendingCount(userID), n, PendingCountTTL).Err()
}

// KeyForPendingGen is bumped on every invalidation of userID's count.
func (c *RedisCache) KeyForPendingGen(userID string) string {
	return fmt.Sprintf("connections:pending:gen:%s", userID)
}

// PendingGeneration reads the invalidation counter for userID. Take it before
// counting in the DB and hand it to SetPendingCountIfCurrent.
func (c *RedisCache) PendingGeneration(ctx context.Context, userID string) (int64, error) {
	gen, err := c.Client.Get(ctx, c.KeyForPendingGen(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetPendingCountIfCurrent caches n only if no invalidation happened since gen
// was read. It reports whether the value was written.
func (c *RedisCache) SetPendingCountIfCurrent(ctx context.Context, userID string, n, gen int64) (bool, error) {
	genKey := c.KeyForPendingGen(userID)
	written := false
	err := c.Client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.KeyForPendingCount(userID), n, PendingCountTTL)
			return nil
		})
		if err == nil {
			written = true
		}
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		// invalidated while we were writing
		return false, nil
	}
	return written, err
}

// InvalidatePendingCount drops the cached count for every given user and
// bumps their generation, so fills computed before this call are discarded.
func (c *RedisCache) InvalidatePendingCount(ctx context.Context, userIDs ...string) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Del(ctx, c.KeyForPendingCount(id))
			pipe.Incr(ctx, c.KeyForPendingGen(id))
			pipe.Expire(ctx, c.KeyForPendingGen(id), 2*PendingCountTTL)
		}
		return nil
	})
	return err
}
