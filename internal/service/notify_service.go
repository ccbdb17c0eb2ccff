package service

import (
	"context"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/dto"
	"github.com/haierkeys/echovault/internal/metrics"
	"github.com/haierkeys/echovault/internal/push"
	"github.com/haierkeys/echovault/pkg/code"
	"github.com/haierkeys/echovault/pkg/convert"
	"github.com/haierkeys/echovault/pkg/logger"
	"go.uber.org/zap"
)

// NotifyService 定义推送订阅与消息广播服务接口
type NotifyService interface {
	// Subscribe 注册推送订阅，端点已存在时幂等返回已有记录
	Subscribe(ctx context.Context, params *dto.SubscriptionCreateRequest) (*dto.SubscriptionDTO, error)

	// NotifyAll 向全部订阅广播消息，失效端点随广播清理
	NotifyAll(ctx context.Context, payload *push.Payload)
}

// notifyService 实现 NotifyService 接口
type notifyService struct {
	subRepo domain.SubscriptionRepository
	sender  push.Sender
	logger  *zap.Logger
}

// NewNotifyService 创建 NotifyService 实例
func NewNotifyService(subRepo domain.SubscriptionRepository, sender push.Sender, logger *zap.Logger) NotifyService {
	return &notifyService{
		subRepo: subRepo,
		sender:  sender,
		logger:  logger,
	}
}

// Subscribe 注册推送订阅
func (s *notifyService) Subscribe(ctx context.Context, params *dto.SubscriptionCreateRequest) (*dto.SubscriptionDTO, error) {
	sub, err := s.subRepo.UpsertByEndpoint(ctx, &domain.PushSubscription{
		Endpoint: params.Endpoint,
		P256dh:   params.Keys.P256dh,
		Auth:     params.Keys.Auth,
	})
	if err != nil {
		return nil, code.ErrorSubscriptionFailed.WithDetails(err.Error())
	}
	return convert.StructAssign(sub, &dto.SubscriptionDTO{}).(*dto.SubscriptionDTO), nil
}

// NotifyAll 向全部订阅广播消息
// 单个订阅的失败不影响其余订阅，Gone 端点就地删除
func (s *notifyService) NotifyAll(ctx context.Context, payload *push.Payload) {
	if !s.sender.Enabled() {
		return
	}

	subs, err := s.subRepo.List(ctx)
	if err != nil {
		s.logger.Warn("subscription list failed", zap.Error(err))
		return
	}

	for _, sub := range subs {
		result := s.sender.Send(ctx, sub, payload)
		metrics.PushResults.WithLabelValues(result.String()).Inc()

		switch result {
		case push.Gone:
			if err := s.subRepo.Delete(ctx, sub.ID); err != nil {
				s.logger.Warn("expired subscription cleanup failed",
					zap.Int64("subscription_id", sub.ID),
					zap.Error(err))
				continue
			}
			metrics.SubscriptionsCleaned.Inc()
			s.logger.Info("expired subscription removed",
				zap.Int64("subscription_id", sub.ID),
				zap.String(logger.FieldEndpoint, sub.Endpoint))
		case push.TransientError:
			s.logger.Debug("push delivery failed, subscription kept",
				zap.String(logger.FieldEndpoint, sub.Endpoint))
		}
	}
}
