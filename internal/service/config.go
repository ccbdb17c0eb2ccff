// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Search SearchServiceConfig // Search related config // 搜索相关配置
	Push   PushServiceConfig   // Push related config // 推送相关配置
}

// SearchServiceConfig semantic search configuration
// SearchServiceConfig 语义搜索配置
type SearchServiceConfig struct {
	DefaultLimit int // Result count when not specified // 未指定时的返回条数
	MaxLimit     int // Upper bound for result count // 返回条数上限
}

// PushServiceConfig push notification configuration
// PushServiceConfig 推送通知配置
type PushServiceConfig struct {
	NotificationTitle string // Title of new note notifications // 新笔记通知标题
}

// DefaultServiceConfig returns the service defaults
// DefaultServiceConfig 返回服务层默认配置
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Search: SearchServiceConfig{
			DefaultLimit: 5,
			MaxLimit:     100,
		},
		Push: PushServiceConfig{
			NotificationTitle: "New Note in EchoVault",
		},
	}
}
