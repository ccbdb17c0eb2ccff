// Package domain 定义领域模型和接口
package domain

import "time"

// Note 笔记领域模型
// Embedding 为内容向量，计算失败或未配置提供方时为 nil
type Note struct {
	ID        int64
	Title     string
	Content   string
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteUpdate 部分更新的字段集合，nil 字段保持原值
type NoteUpdate struct {
	Title   *string
	Content *string
}

// ScoredNote 语义搜索结果
type ScoredNote struct {
	Note       *Note
	Similarity float64
}
