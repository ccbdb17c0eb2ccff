// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/echovault/internal/dao"
	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/embedding"
	"github.com/haierkeys/echovault/internal/push"
	"github.com/haierkeys/echovault/internal/service"
	"github.com/haierkeys/echovault/pkg/workerpool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool *workerpool.Pool

	// Repository 层
	NoteRepo domain.NoteRepository
	SubRepo  domain.SubscriptionRepository

	// 外部能力
	Embedder embedding.Provider
	Sender   push.Sender

	// Service 层
	NoteService   service.NoteService
	SearchService service.SearchService
	NotifyService service.NotifyService

	// 启动时间
	StartTime time.Time
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 DAO
	a.Dao = dao.New(db)

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.SubRepo = dao.NewSubscriptionRepository(a.Dao)

	// 初始化外部能力
	a.Embedder = embedding.NewGemini(&cfg.Embedding)
	a.Sender = push.NewSender(&cfg.Push, logger)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		Search: service.SearchServiceConfig{
			DefaultLimit: cfg.Search.DefaultLimit,
			MaxLimit:     cfg.Search.MaxLimit,
		},
		Push: service.PushServiceConfig{
			NotificationTitle: cfg.App.NotificationTitle,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.NotifyService = service.NewNotifyService(a.SubRepo, a.Sender, logger)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.Embedder, a.NotifyService, a.workerPool, svcConfig, logger)
	a.SearchService = service.NewSearchService(a.NoteRepo, a.Embedder, svcConfig, logger)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Bool("embeddingEnabled", a.Embedder.Enabled()),
		zap.Bool("pushEnabled", a.Sender.Enabled()))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.workerPool.Shutdown(ctx); err != nil {
		a.logger.Warn("worker pool shutdown incomplete", zap.Error(err))
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask 提交任务到 Worker Pool
// 返回错误如果池已满或已关闭
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
