package task

import (
	"github.com/haierkeys/echovault/internal/app"
	"github.com/haierkeys/echovault/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(a *app.App, logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       a,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	backfillTask := NewEmbeddingBackfillTask(m.app)
	if backfillTask != nil {
		m.scheduler.AddTask(backfillTask)
	} else {
		m.logger.Info("embedding backfill task is disabled")
	}

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
