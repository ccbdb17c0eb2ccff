package model

import "github.com/haierkeys/echovault/pkg/timex"

const TableNameNote = "notes"

// Note mapped from table <notes>
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Title     string     `gorm:"column:title;not null;index:idx_note_title" json:"title" form:"title"`
	Content   string     `gorm:"column:content;type:text" json:"content" form:"content"`
	Embedding []byte     `gorm:"column:embedding;type:blob" json:"-" form:"-"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
