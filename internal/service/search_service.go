package service

import (
	"context"
	"errors"
	"sort"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/dto"
	"github.com/haierkeys/echovault/internal/embedding"
	"github.com/haierkeys/echovault/internal/metrics"
	"github.com/haierkeys/echovault/pkg/code"
	"github.com/haierkeys/echovault/pkg/logger"
	"github.com/haierkeys/echovault/pkg/timex"
	"github.com/haierkeys/echovault/pkg/vector"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SearchService 定义语义搜索服务接口
type SearchService interface {
	// Search 按余弦相似度搜索笔记
	Search(ctx context.Context, params *dto.SearchRequest) ([]*dto.ScoredNoteDTO, error)
}

// searchService 实现 SearchService 接口
type searchService struct {
	noteRepo domain.NoteRepository
	provider embedding.Provider
	sf       *singleflight.Group
	config   *ServiceConfig
	logger   *zap.Logger
}

// NewSearchService 创建 SearchService 实例
func NewSearchService(noteRepo domain.NoteRepository, provider embedding.Provider, config *ServiceConfig, logger *zap.Logger) SearchService {
	return &searchService{
		noteRepo: noteRepo,
		provider: provider,
		sf:       &singleflight.Group{},
		config:   config,
		logger:   logger,
	}
}

// clampLimit 将返回条数收敛到 [1, MaxLimit]，未指定时取默认值
func (s *searchService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.config.Search.DefaultLimit
	}
	if limit > s.config.Search.MaxLimit {
		return s.config.Search.MaxLimit
	}
	return limit
}

// Search 按余弦相似度搜索笔记
// 提供方不可用时返回空结果而不是错误
// 相似度相同的结果按 ID 升序排列，保证分页稳定
func (s *searchService) Search(ctx context.Context, params *dto.SearchRequest) ([]*dto.ScoredNoteDTO, error) {
	metrics.SearchQueries.Inc()
	limit := s.clampLimit(params.Limit)

	// 相同查询的并发向量计算合并为一次
	v, err, _ := s.sf.Do("embed:"+params.Query, func() (any, error) {
		return s.provider.Embed(ctx, params.Query)
	})
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			metrics.EmbeddingsUnavailable.Inc()
			s.logger.Debug("search degraded, embedding provider unavailable",
				zap.String(logger.FieldQuery, params.Query))
			return []*dto.ScoredNoteDTO{}, nil
		}
		return nil, code.ErrorSearchFailed.WithDetails(err.Error())
	}
	queryVec := v.([]float32)

	notes, err := s.noteRepo.ListWithEmbedding(ctx)
	if err != nil {
		return nil, code.ErrorSearchFailed.WithDetails(err.Error())
	}

	scored := make([]*domain.ScoredNote, 0, len(notes))
	for _, n := range notes {
		scored = append(scored, &domain.ScoredNote{
			Note:       n,
			Similarity: vector.CosineSimilarity(queryVec, n.Embedding),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Note.ID < scored[j].Note.ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	list := make([]*dto.ScoredNoteDTO, 0, len(scored))
	for _, sn := range scored {
		list = append(list, &dto.ScoredNoteDTO{
			ID:         sn.Note.ID,
			Title:      sn.Note.Title,
			Content:    sn.Note.Content,
			Similarity: sn.Similarity,
			CreatedAt:  timex.Time(sn.Note.CreatedAt),
			UpdatedAt:  timex.Time(sn.Note.UpdatedAt),
		})
	}
	return list, nil
}
