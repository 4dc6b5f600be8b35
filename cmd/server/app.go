package main

import (
	"context"
	"fmt"

	"go-file-share/internal/api"
	"go-file-share/internal/cache"
	"go-file-share/internal/events"
	"go-file-share/internal/repository"
	"go-file-share/internal/service"
	"go-file-share/pkg/config"
	"go-file-share/pkg/db"
	"go-file-share/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app 持有进程内所有需要关闭的资源
type app struct {
	db        *gorm.DB
	cache     cache.RankingCache
	publisher events.Publisher
	services  api.Services
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	// 初始化数据库连接
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rankingCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		_ = db.Close(conn)
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	publisher, err := events.CreatePublisher(cfg.Messaging)
	if err != nil {
		_ = rankingCache.Close()
		_ = db.Close(conn)
		return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
	}

	userRepo := repository.NewUserRepository(conn)
	groupRepo := repository.NewGroupRepository(conn)
	groupMemberRepo := repository.NewGroupMemberRepository(conn)
	fileRepo := repository.NewFileRepository(conn)
	fileShareRepo := repository.NewFileShareRepository(conn)

	return &app{
		db:        conn,
		cache:     rankingCache,
		publisher: publisher,
		services: api.Services{
			Users:  service.NewUserService(userRepo, rankingCache, publisher),
			Groups: service.NewGroupService(groupRepo, groupMemberRepo, rankingCache, publisher),
			Files:  service.NewFileService(fileRepo, fileShareRepo, rankingCache, publisher, cfg.Ranking.MaxK),
		},
	}, nil
}

func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		logger.L.Warn("Failed to close event publisher", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		logger.L.Warn("Failed to close ranking cache", zap.Error(err))
	}
	if err := db.Close(a.db); err != nil {
		logger.L.Warn("Failed to close database", zap.Error(err))
	}
}
