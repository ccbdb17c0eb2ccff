package dao

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/model"
	"github.com/haierkeys/echovault/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subscriptionRepository 实现 domain.SubscriptionRepository 接口
type subscriptionRepository struct {
	dao *Dao
}

// NewSubscriptionRepository 创建 SubscriptionRepository 实例
func NewSubscriptionRepository(dao *Dao) domain.SubscriptionRepository {
	return &subscriptionRepository{dao: dao}
}

func (r *subscriptionRepository) toDomain(m *model.PushSubscription) *domain.PushSubscription {
	if m == nil {
		return nil
	}
	return &domain.PushSubscription{
		ID:        m.ID,
		Endpoint:  m.Endpoint,
		P256dh:    m.P256dh,
		Auth:      m.Auth,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// UpsertByEndpoint 按端点幂等插入
// 依赖 endpoint 的唯一索引：冲突时不写入，返回已有记录
func (r *subscriptionRepository) UpsertByEndpoint(ctx context.Context, sub *domain.PushSubscription) (*domain.PushSubscription, error) {
	m := &model.PushSubscription{
		Endpoint:  sub.Endpoint,
		P256dh:    sub.P256dh,
		Auth:      sub.Auth,
		CreatedAt: timex.Now(),
	}

	err := r.dao.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoNothing: true,
		}).
		Create(m).Error
	if err != nil {
		return nil, err
	}

	// 冲突时 Create 不回填 ID，统一按端点回查
	return r.GetByEndpoint(ctx, sub.Endpoint)
}

// GetByEndpoint 根据端点获取订阅
func (r *subscriptionRepository) GetByEndpoint(ctx context.Context, endpoint string) (*domain.PushSubscription, error) {
	var m model.PushSubscription
	err := r.dao.db.WithContext(ctx).Where("endpoint = ?", endpoint).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// List 获取全部订阅
func (r *subscriptionRepository) List(ctx context.Context) ([]*domain.PushSubscription, error) {
	var ms []*model.PushSubscription
	err := r.dao.db.WithContext(ctx).Order("id ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}

	subs := make([]*domain.PushSubscription, 0, len(ms))
	for _, m := range ms {
		subs = append(subs, r.toDomain(m))
	}
	return subs, nil
}

// Delete 删除订阅
func (r *subscriptionRepository) Delete(ctx context.Context, id int64) error {
	result := r.dao.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PushSubscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count 获取订阅数量
func (r *subscriptionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).Model(&model.PushSubscription{}).Count(&count).Error
	return count, err
}
