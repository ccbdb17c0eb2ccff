package model

import "github.com/haierkeys/echovault/pkg/timex"

const TableNamePushSubscription = "push_subscriptions"

// PushSubscription mapped from table <push_subscriptions>
// Endpoint 为推送端点，全局唯一
type PushSubscription struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Endpoint  string     `gorm:"column:endpoint;not null;uniqueIndex:idx_subscription_endpoint" json:"endpoint" form:"endpoint"`
	P256dh    string     `gorm:"column:p256dh;not null" json:"p256dh" form:"p256dh"`
	Auth      string     `gorm:"column:auth;not null" json:"auth" form:"auth"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime" json:"createdAt" form:"createdAt"`
}

// TableName PushSubscription's table name
func (*PushSubscription) TableName() string {
	return TableNamePushSubscription
}
