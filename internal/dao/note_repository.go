package dao

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/model"
	"github.com/haierkeys/echovault/pkg/timex"
	"github.com/haierkeys/echovault/pkg/vector"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
// 向量 BLOB 解码失败按无向量处理，不阻断查询
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	embedding, _ := vector.Decode(m.Embedding)
	return &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Embedding: embedding,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	return &model.Note{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Embedding: vector.Encode(note.Embedding),
		CreatedAt: timex.Time(note.CreatedAt),
		UpdatedAt: timex.Time(note.UpdatedAt),
	}
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	m.ID = 0
	now := timex.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// List 按 ID 升序分页获取笔记列表
func (r *noteRepository) List(ctx context.Context, skip, limit int) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// Count 获取笔记总数
func (r *noteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).Model(&model.Note{}).Count(&count).Error
	return count, err
}

// Update 部分更新笔记，nil 字段不变更
func (r *noteRepository) Update(ctx context.Context, id int64, update *domain.NoteUpdate) (*domain.Note, error) {
	values := map[string]interface{}{}
	if update.Title != nil {
		values["title"] = *update.Title
	}
	if update.Content != nil {
		values["content"] = *update.Content
	}

	if len(values) > 0 {
		values["updated_at"] = timex.Now()
		result := r.dao.db.WithContext(ctx).
			Model(&model.Note{}).
			Where("id = ?", id).
			Updates(values)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrNotFound
		}
	}

	return r.GetByID(ctx, id)
}

// UpdateEmbedding 更新笔记的内容向量
func (r *noteRepository) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	result := r.dao.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Update("embedding", vector.Encode(embedding))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete 物理删除笔记（向量随行删除）
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	result := r.dao.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWithEmbedding 获取所有已计算向量的笔记
func (r *noteRepository) ListWithEmbedding(ctx context.Context) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("embedding IS NOT NULL").
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		n := r.toDomain(m)
		if len(n.Embedding) == 0 {
			continue
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// ListMissingEmbedding 获取缺少向量的笔记，最多 limit 条
func (r *noteRepository) ListMissingEmbedding(ctx context.Context, limit int) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("embedding IS NULL OR embedding = ?", []byte{}).
		Order("id ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}
