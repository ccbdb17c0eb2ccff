// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/echovault/pkg/timex"
)

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// NoteCreateRequest Request parameters for creating a note
// 用于创建笔记的请求参数
type NoteCreateRequest struct {
	Title   string `json:"title" form:"title" binding:"required,max=512"`
	Content string `json:"content" form:"content" binding:"required"`
}

// NoteUpdateRequest Request parameters for partially updating a note
// 用于部分更新笔记的请求参数，nil 字段保持原值
type NoteUpdateRequest struct {
	Title   *string `json:"title" form:"title" binding:"omitempty,max=512"`
	Content *string `json:"content" form:"content"`
}

// NoteListRequest Request parameters for listing notes
// 用于分页获取笔记列表的请求参数
type NoteListRequest struct {
	Skip  int `json:"skip" form:"skip" binding:"omitempty,min=0"`
	Limit int `json:"limit" form:"limit" binding:"omitempty,min=1"`
}

// SearchRequest Request parameters for semantic search
// 用于语义搜索的请求参数
type SearchRequest struct {
	Query string `json:"q" form:"q" binding:"required"`
	Limit int    `json:"limit" form:"limit" binding:"omitempty"`
}

// ScoredNoteDTO Search result with similarity score
// 带相似度得分的搜索结果
type ScoredNoteDTO struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Similarity float64    `json:"similarity"`
	CreatedAt  timex.Time `json:"createdAt"`
	UpdatedAt  timex.Time `json:"updatedAt"`
}
