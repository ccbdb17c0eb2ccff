package domain

import "time"

// PushSubscription 推送订阅领域模型
// 同一 Endpoint 在存储中只存在一行
type PushSubscription struct {
	ID        int64
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}
