package service

import (
	"context"
	"testing"

	"github.com/haierkeys/echovault/internal/dto"
	"github.com/haierkeys/echovault/internal/push"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotifyService_SubscribeIdempotent(t *testing.T) {
	subRepo := newMockSubRepo()
	svc := NewNotifyService(subRepo, &mockSender{}, zap.NewNop())

	params := &dto.SubscriptionCreateRequest{
		Endpoint: "https://push.example.com/ep1",
		Keys:     dto.SubscriptionKeys{P256dh: "p", Auth: "a"},
	}

	first, err := svc.Subscribe(context.Background(), params)
	require.NoError(t, err)

	second, err := svc.Subscribe(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	count, err := subRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotifyService_FanOutCleansGoneOnly(t *testing.T) {
	ctx := context.Background()
	subRepo := newMockSubRepo()

	endpoints := map[string]push.Result{
		"https://push.example.com/ok":        push.Delivered,
		"https://push.example.com/gone":      push.Gone,
		"https://push.example.com/transient": push.TransientError,
	}
	for ep := range endpoints {
		_, err := subRepo.UpsertByEndpoint(ctx, subWithEndpoint(ep))
		require.NoError(t, err)
	}

	sender := &mockSender{results: endpoints}
	svc := NewNotifyService(subRepo, sender, zap.NewNop())

	svc.NotifyAll(ctx, &push.Payload{Title: "New Note in EchoVault", Body: "hi"})

	// 三个订阅都收到了投递尝试
	sender.mu.Lock()
	assert.Len(t, sender.sent, 3)
	sender.mu.Unlock()

	// 只有 Gone 的端点被清理
	remaining, err := subRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	for _, sub := range remaining {
		assert.NotEqual(t, "https://push.example.com/gone", sub.Endpoint)
	}
}

func TestNotifyService_DisabledSenderSkipsList(t *testing.T) {
	ctx := context.Background()
	subRepo := newMockSubRepo()
	_, err := subRepo.UpsertByEndpoint(ctx, subWithEndpoint("https://push.example.com/a"))
	require.NoError(t, err)

	svc := NewNotifyService(subRepo, push.Disabled{}, zap.NewNop())
	svc.NotifyAll(ctx, &push.Payload{Title: "t", Body: "b"})

	// 未配置发送方时不清理任何订阅
	count, err := subRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
