// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"

	"github.com/haierkeys/echovault/internal/dao"
	"github.com/haierkeys/echovault/internal/embedding"
	"github.com/haierkeys/echovault/internal/push"
	"github.com/haierkeys/echovault/pkg/logger"
	"github.com/haierkeys/echovault/pkg/workerpool"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File      string                 `yaml:"-"` // 配置文件路径，不序列化
	Server    ServerConfig           `yaml:"server"`
	Log       logger.Config          `yaml:"log"`
	Database  dao.DatabaseConfig     `yaml:"database"`
	App       AppSettings            `yaml:"app"`
	Embedding embedding.GeminiConfig `yaml:"embedding"`
	Push      push.Config            `yaml:"push"`
	Search    SearchConfig           `yaml:"search"`
	Tracer    TracerConfig           `yaml:"tracer"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultPageSize 默认页面大小
	DefaultPageSize int `yaml:"default-page-size" default:"100"`
	// MaxPageSize 最大页面大小
	MaxPageSize int `yaml:"max-page-size" default:"100"`
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// NotificationTitle 新笔记推送通知标题
	NotificationTitle string `yaml:"notification-title" default:"New Note in EchoVault"`

	// Worker Pool 配置
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"10"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"100"`

	// EmbeddingBackfillCron 向量补算任务的 cron 表达式，空值禁用
	EmbeddingBackfillCron string `yaml:"embedding-backfill-cron" default:"@every 10m"`
	// EmbeddingBackfillBatch 每轮补算的最大笔记数
	EmbeddingBackfillBatch int `yaml:"embedding-backfill-batch" default:"50"`
}

// SearchConfig 语义搜索配置
type SearchConfig struct {
	// DefaultLimit 未指定时的返回条数
	DefaultLimit int `yaml:"default-limit" default:"5"`
	// MaxLimit 返回条数上限
	MaxLimit int `yaml:"max-limit" default:"100"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	c.loadEnvOverrides()

	return c, realpath, nil
}

// loadEnvOverrides 从环境变量覆盖敏感配置
// 环境变量优先于配置文件，便于容器化部署
func (c *AppConfig) loadEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Embedding.APIKey = v
	} else if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.Embedding.APIKey = v
	}

	if v := os.Getenv("VAPID_PUBLIC_KEY"); v != "" {
		c.Push.VAPIDPublicKey = v
	}
	if v := os.Getenv("VAPID_PRIVATE_KEY"); v != "" {
		c.Push.VAPIDPrivateKey = v
	}
	if v := os.Getenv("VAPID_EMAIL"); v != "" {
		c.Push.Email = v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		dbType, dsn := dao.TypeFromDSN(v)
		c.Database.Type = dbType
		if dbType == "sqlite" {
			if dsn != "" {
				c.Database.Path = dsn
			}
		} else {
			c.Database.DSN = dsn
		}
	}
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}
	return os.WriteFile(c.File, data, 0o644)
}

// GetWorkerPoolConfig 获取 Worker Pool 配置
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	return workerpool.Config{
		MaxWorkers: c.App.WorkerPoolMaxWorkers,
		QueueSize:  c.App.WorkerPoolQueueSize,
	}
}
