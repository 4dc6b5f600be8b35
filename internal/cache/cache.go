package cache

import (
	"context"
	"fmt"

	"go-file-share/internal/visibility"
	"go-file-share/pkg/config"
	"go-file-share/pkg/logger"

	"go.uber.org/zap"
)

// RankingCache 按 k 缓存分享排名。
// 读取前先取 Generation，写入时带上同一个 generation；Invalidate 使 generation 前进，
// 之前计算的排名即使晚于失效写入也不会再被读到。
type RankingCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, k int) ([]visibility.Ranked, bool, error)
	Set(ctx context.Context, gen int64, k int, ranked []visibility.Ranked) error
	Invalidate(ctx context.Context) error
	Close() error
}

// New 根据配置创建相应的缓存实现
func New(ctx context.Context, cfg config.CacheConfig) (RankingCache, error) {
	logger.L.Info("Creating ranking cache", zap.String("provider", cfg.Provider))

	switch cfg.Provider {
	case "", "none":
		return Nop{}, nil
	case "redis":
		return NewRedisCache(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported cache provider %q", cfg.Provider)
	}
}

// 不缓存
type Nop struct{}

func (Nop) Generation(context.Context) (int64, error) { return 0, nil }
func (Nop) Get(context.Context, int64, int) ([]visibility.Ranked, bool, error) {
	return nil, false, nil
}
func (Nop) Set(context.Context, int64, int, []visibility.Ranked) error { return nil }
func (Nop) Invalidate(context.Context) error                           { return nil }
func (Nop) Close() error                                               { return nil }
