package domain

import (
	"context"
	"errors"
)

// ErrNotFound 由仓储层在记录不存在时返回
// 业务层据此映射为对外的 404
var ErrNotFound = errors.New("record not found")

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id int64) (*Note, error)

	// List 按 ID 升序分页获取笔记列表
	List(ctx context.Context, skip, limit int) ([]*Note, error)

	// Count 获取笔记总数
	Count(ctx context.Context) (int64, error)

	// Update 部分更新笔记，nil 字段不变更
	Update(ctx context.Context, id int64, update *NoteUpdate) (*Note, error)

	// UpdateEmbedding 更新笔记的内容向量
	UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error

	// Delete 物理删除笔记（向量随行删除）
	Delete(ctx context.Context, id int64) error

	// ListWithEmbedding 获取所有已计算向量的笔记
	ListWithEmbedding(ctx context.Context) ([]*Note, error)

	// ListMissingEmbedding 获取缺少向量的笔记，最多 limit 条
	ListMissingEmbedding(ctx context.Context, limit int) ([]*Note, error)
}

// SubscriptionRepository 推送订阅仓储接口
type SubscriptionRepository interface {
	// UpsertByEndpoint 按端点幂等插入，端点已存在时返回已有记录
	UpsertByEndpoint(ctx context.Context, sub *PushSubscription) (*PushSubscription, error)

	// GetByEndpoint 根据端点获取订阅
	GetByEndpoint(ctx context.Context, endpoint string) (*PushSubscription, error)

	// List 获取全部订阅
	List(ctx context.Context) ([]*PushSubscription, error)

	// Delete 删除订阅
	Delete(ctx context.Context, id int64) error

	// Count 获取订阅数量
	Count(ctx context.Context) (int64, error)
}
