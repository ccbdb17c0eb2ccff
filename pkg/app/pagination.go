package app

import (
	"github.com/haierkeys/echovault/pkg/convert"

	"github.com/gin-gonic/gin"
)

// PaginationConfig pagination configuration // 分页配置
type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPaginationConfig default pagination configuration // 默认分页配置
var DefaultPaginationConfig = PaginationConfig{
	DefaultLimit: 100,
	MaxLimit:     100,
}

// GetSkip 获取列表偏移量，负数按 0 处理
func GetSkip(c *gin.Context) int {
	var skip int

	if s, exist := c.GetQuery("skip"); exist {
		skip = convert.StrTo(s).MustInt()
	}

	if skip < 0 {
		return 0
	}
	return skip
}

// GetLimitWithConfig gets page size (using injected configuration)
// GetLimitWithConfig 获取分页大小（使用注入的配置）
func GetLimitWithConfig(c *gin.Context, cfg PaginationConfig) int {
	var limit int

	if s, exist := c.GetQuery("limit"); exist {
		limit = convert.StrTo(s).MustInt()
	}

	if limit <= 0 {
		return cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}
	return limit
}

// GetLimit gets page size (using default configuration)
// GetLimit 获取分页大小（使用默认配置）
func GetLimit(c *gin.Context) int {
	return GetLimitWithConfig(c, DefaultPaginationConfig)
}

func NewPager(c *gin.Context, totalRows int) *Pager {
	return &Pager{
		Skip:      GetSkip(c),
		Limit:     GetLimit(c),
		TotalRows: totalRows,
	}
}
