package service

import (
	"context"
	"errors"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/dto"
	"github.com/haierkeys/echovault/internal/embedding"
	"github.com/haierkeys/echovault/internal/metrics"
	"github.com/haierkeys/echovault/internal/push"
	"github.com/haierkeys/echovault/pkg/app"
	"github.com/haierkeys/echovault/pkg/code"
	"github.com/haierkeys/echovault/pkg/convert"
	"github.com/haierkeys/echovault/pkg/logger"
	"github.com/haierkeys/echovault/pkg/workerpool"
	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Create 创建笔记并异步触发向量计算和推送通知
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, id int64) (*dto.NoteDTO, error)

	// List 按 ID 升序分页获取笔记列表
	List(ctx context.Context, pager *app.Pager) ([]*dto.NoteDTO, int, error)

	// Update 部分更新笔记，内容变更时重新计算向量
	Update(ctx context.Context, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 删除笔记
	Delete(ctx context.Context, id int64) error

	// EmbedAndStore 计算并保存笔记向量，提供方不可用时静默跳过
	EmbedAndStore(ctx context.Context, id int64, content string) error

	// BackfillEmbeddings 为缺少向量的笔记补算向量，返回补算条数
	BackfillEmbeddings(ctx context.Context, limit int) (int, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	provider embedding.Provider
	notify   NotifyService
	pool     *workerpool.Pool
	config   *ServiceConfig
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, provider embedding.Provider, notify NotifyService, pool *workerpool.Pool, config *ServiceConfig, logger *zap.Logger) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		provider: provider,
		notify:   notify,
		pool:     pool,
		config:   config,
		logger:   logger,
	}
}

func toNoteDTO(n *domain.Note) *dto.NoteDTO {
	return convert.StructAssign(n, &dto.NoteDTO{}).(*dto.NoteDTO)
}

// Create 创建笔记
// 向量计算和推送通知投递到 worker pool 执行，失败不影响创建结果
func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.Create(ctx, &domain.Note{
		Title:   params.Title,
		Content: params.Content,
	})
	if err != nil {
		return nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}

	metrics.NotesCreated.Inc()

	noteID := note.ID
	title := note.Title
	content := note.Content

	// 请求上下文在响应后即被取消，派发任务需脱离它才能执行
	// The request context is canceled once the response is written, detach before dispatch
	taskCtx := context.WithoutCancel(ctx)

	if err := s.pool.SubmitAsync(taskCtx, func(taskCtx context.Context) error {
		return s.EmbedAndStore(taskCtx, noteID, content)
	}); err != nil {
		s.logger.Warn("embed task submit failed", zap.Int64(logger.FieldNoteID, noteID), zap.Error(err))
	}

	if err := s.pool.SubmitAsync(taskCtx, func(taskCtx context.Context) error {
		s.notify.NotifyAll(taskCtx, &push.Payload{
			Title: s.config.Push.NotificationTitle,
			Body:  title,
		})
		return nil
	}); err != nil {
		s.logger.Warn("notify task submit failed", zap.Int64(logger.FieldNoteID, noteID), zap.Error(err))
	}

	return toNoteDTO(note), nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteListFailed.WithDetails(err.Error())
	}
	return toNoteDTO(note), nil
}

// List 按 ID 升序分页获取笔记列表
func (s *noteService) List(ctx context.Context, pager *app.Pager) ([]*dto.NoteDTO, int, error) {
	count, err := s.noteRepo.Count(ctx)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}

	notes, err := s.noteRepo.List(ctx, pager.Skip, pager.Limit)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}

	list := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		list = append(list, toNoteDTO(n))
	}
	return list, int(count), nil
}

// Update 部分更新笔记
// 内容发生变更时重新投递向量计算任务
func (s *noteService) Update(ctx context.Context, id int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.Update(ctx, id, &domain.NoteUpdate{
		Title:   params.Title,
		Content: params.Content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNoteUpdateFailed.WithDetails(err.Error())
	}

	if params.Content != nil {
		noteID := note.ID
		content := note.Content
		if err := s.pool.SubmitAsync(context.WithoutCancel(ctx), func(taskCtx context.Context) error {
			return s.EmbedAndStore(taskCtx, noteID, content)
		}); err != nil {
			s.logger.Warn("embed task submit failed", zap.Int64(logger.FieldNoteID, noteID), zap.Error(err))
		}
	}

	return toNoteDTO(note), nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, id int64) error {
	err := s.noteRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}
	return nil
}

// EmbedAndStore 计算并保存笔记向量
// 提供方不可用时记录指标后静默返回，不算失败
func (s *noteService) EmbedAndStore(ctx context.Context, id int64, content string) error {
	vec, err := s.provider.Embed(ctx, content)
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			metrics.EmbeddingsUnavailable.Inc()
			s.logger.Debug("embedding provider unavailable", zap.Int64(logger.FieldNoteID, id))
			return nil
		}
		s.logger.Warn("embedding compute failed", zap.Int64(logger.FieldNoteID, id), zap.Error(err))
		return err
	}

	if err := s.noteRepo.UpdateEmbedding(ctx, id, vec); err != nil {
		// 笔记可能在计算期间被删除
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		s.logger.Warn("embedding store failed", zap.Int64(logger.FieldNoteID, id), zap.Error(err))
		return err
	}

	metrics.EmbeddingsComputed.Inc()
	return nil
}

// BackfillEmbeddings 为缺少向量的笔记补算向量
func (s *noteService) BackfillEmbeddings(ctx context.Context, limit int) (int, error) {
	if !s.provider.Enabled() {
		return 0, nil
	}

	notes, err := s.noteRepo.ListMissingEmbedding(ctx, limit)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, n := range notes {
		if err := s.EmbedAndStore(ctx, n.ID, n.Content); err != nil {
			continue
		}
		done++
	}
	return done, nil
}
