package dto

import (
	"github.com/haierkeys/echovault/pkg/timex"
)

// SubscriptionDTO Push subscription data transfer object
// SubscriptionDTO 推送订阅数据传输对象
type SubscriptionDTO struct {
	ID        int64      `json:"id"`
	Endpoint  string     `json:"endpoint"`
	CreatedAt timex.Time `json:"createdAt"`
}

// SubscriptionKeys Web Push encryption keys
// SubscriptionKeys Web Push 加密密钥
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" form:"p256dh" binding:"required"`
	Auth   string `json:"auth" form:"auth" binding:"required"`
}

// SubscriptionCreateRequest Request parameters for registering a push subscription
// 用于注册推送订阅的请求参数，与浏览器 PushSubscription.toJSON() 对齐
type SubscriptionCreateRequest struct {
	Endpoint string           `json:"endpoint" form:"endpoint" binding:"required,url"`
	Keys     SubscriptionKeys `json:"keys" binding:"required"`
}
