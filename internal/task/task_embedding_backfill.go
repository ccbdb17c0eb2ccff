package task

import (
	"context"

	"github.com/haierkeys/echovault/internal/app"
	"github.com/haierkeys/echovault/pkg/logger"

	"go.uber.org/zap"
)

// EmbeddingBackfillTask 向量补算任务
// 周期性为缺少向量的笔记补算向量，尽力而为
type EmbeddingBackfillTask struct {
	app      *app.App
	spec     string
	batch    int
	firstRun bool
}

// NewEmbeddingBackfillTask 创建向量补算任务
// 未配置向量提供方或 cron 表达式为空时返回 nil
func NewEmbeddingBackfillTask(a *app.App) Task {
	cfg := a.Config()
	if !a.Embedder.Enabled() || cfg.App.EmbeddingBackfillCron == "" {
		return nil
	}

	batch := cfg.App.EmbeddingBackfillBatch
	if batch <= 0 {
		batch = 50
	}

	return &EmbeddingBackfillTask{
		app:      a,
		spec:     cfg.App.EmbeddingBackfillCron,
		batch:    batch,
		firstRun: true,
	}
}

// Name 返回任务名称
func (t *EmbeddingBackfillTask) Name() string {
	return "EmbeddingBackfillTask"
}

// CronSpec 返回 cron 表达式
func (t *EmbeddingBackfillTask) CronSpec() string {
	return t.spec
}

// IsStartupRun 启动时立即执行一次
func (t *EmbeddingBackfillTask) IsStartupRun() bool {
	return true
}

// Run 执行补算
func (t *EmbeddingBackfillTask) Run(ctx context.Context) error {
	done, err := t.app.NoteService.BackfillEmbeddings(ctx, t.batch)
	if err != nil {
		return err
	}
	if done > 0 {
		t.app.Logger().Info("embedding backfill finished", zap.Int(logger.FieldCount, done))
	}
	return nil
}
