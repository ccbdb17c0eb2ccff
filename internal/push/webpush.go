package push

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/pkg/logger"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
)

// Config VAPID 推送配置
type Config struct {
	VAPIDPublicKey  string `yaml:"vapid-public-key"`
	VAPIDPrivateKey string `yaml:"vapid-private-key"`
	Email           string `yaml:"email" default:"admin@example.com"`
	TTL             int    `yaml:"ttl" default:"60"`
}

// WebPush 基于 VAPID 协议的推送发送方
type WebPush struct {
	cfg    *Config
	logger *zap.Logger
	client *http.Client
}

// NewSender 创建推送发送方
// 密钥对不完整时返回 Disabled，推送静默跳过
func NewSender(cfg *Config, logger *zap.Logger) Sender {
	if cfg == nil || cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		return Disabled{}
	}
	return &WebPush{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{},
	}
}

// Send 向单个订阅投递消息并归类结果
// 404/410 表示端点已失效，其余失败视为临时错误
func (w *WebPush) Send(ctx context.Context, sub *domain.PushSubscription, payload *Payload) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		w.logger.Error("push payload marshal failed", zap.Error(err))
		return TransientError
	}

	s := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, s, &webpush.Options{
		HTTPClient:      w.client,
		Subscriber:      w.cfg.Email,
		VAPIDPublicKey:  w.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: w.cfg.VAPIDPrivateKey,
		TTL:             w.cfg.TTL,
	})
	if err != nil {
		w.logger.Warn("push send failed",
			zap.String(logger.FieldEndpoint, sub.Endpoint),
			zap.Error(err))
		return TransientError
	}
	defer resp.Body.Close()

	return ClassifyStatus(resp.StatusCode)
}

// Enabled 发送方是否已配置
func (w *WebPush) Enabled() bool { return true }

// ClassifyStatus 将推送服务的 HTTP 状态码归类为投递结果
func ClassifyStatus(statusCode int) Result {
	switch {
	case statusCode == http.StatusNotFound || statusCode == http.StatusGone:
		return Gone
	case statusCode >= 200 && statusCode < 300:
		return Delivered
	default:
		return TransientError
	}
}
