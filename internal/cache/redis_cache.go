package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-file-share/internal/visibility"
	"go-file-share/pkg/config"
	"go-file-share/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "fileshare:top_shared"
	// 每次失效自增
	generationKey = keyPrefix + ":gen"
)

// 每个 (generation, k) 一个独立的 key，各自带 TTL
func entryKey(gen int64, k int) string {
	return fmt.Sprintf("%s:%d:%d", keyPrefix, gen, k)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(ctx context.Context, cfg config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Generation 返回当前的 generation，从未失效过时为 0
func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, gen int64, k int) ([]visibility.Ranked, bool, error) {
	data, err := c.client.Get(ctx, entryKey(gen, k)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var ranked []visibility.Ranked
	if err := json.Unmarshal(data, &ranked); err != nil {
		logger.L.Warn("Discarding undecodable cached ranking", zap.Int("k", k), zap.Error(err))
		return nil, false, nil
	}
	return ranked, true, nil
}

// Set 写入 gen 下的排名。gen 已过期时写入的 key 不会再被读取，随 TTL 清除。
func (c *RedisCache) Set(ctx context.Context, gen int64, k int, ranked []visibility.Ranked) error {
	data, err := json.Marshal(ranked)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}
	return c.client.Set(ctx, entryKey(gen, k), data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
