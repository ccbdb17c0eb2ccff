// Package push 封装 Web Push 消息投递
package push

import (
	"context"

	"github.com/haierkeys/echovault/internal/domain"
)

// Result 单个订阅的投递结果
type Result int

const (
	// Delivered 投递成功
	Delivered Result = iota
	// Gone 端点已失效，订阅应被清理
	Gone
	// TransientError 临时失败，订阅保留
	TransientError
)

func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case Gone:
		return "gone"
	case TransientError:
		return "transient_error"
	default:
		return "unknown"
	}
}

// Payload 推送消息体
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Sender 推送发送方接口
type Sender interface {
	// Send 向单个订阅投递消息
	Send(ctx context.Context, sub *domain.PushSubscription, payload *Payload) Result

	// Enabled 发送方是否已配置
	Enabled() bool
}

// Disabled 未配置 VAPID 密钥时的空实现
type Disabled struct{}

func (Disabled) Send(ctx context.Context, sub *domain.PushSubscription, payload *Payload) Result {
	return TransientError
}

func (Disabled) Enabled() bool { return false }
