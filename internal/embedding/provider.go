// Package embedding 提供文本向量化能力
package embedding

import (
	"context"

	"github.com/pkg/errors"
)

// ErrUnavailable 表示向量提供方未配置或不可达
// 调用方应降级而不是报错给用户
var ErrUnavailable = errors.New("embedding provider unavailable")

// Provider 文本向量提供方接口
type Provider interface {
	// Embed 计算文本的向量表示
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension 返回向量维度
	Dimension() int

	// Enabled 提供方是否已配置
	Enabled() bool
}

// Disabled 未配置提供方时的空实现
type Disabled struct{}

func (Disabled) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, ErrUnavailable
}

func (Disabled) Dimension() int { return 0 }

func (Disabled) Enabled() bool { return false }
