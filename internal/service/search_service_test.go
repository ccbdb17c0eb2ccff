package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/dto"
	"github.com/haierkeys/echovault/internal/embedding"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSearchService(repo *mockNoteRepo, provider embedding.Provider) SearchService {
	return NewSearchService(repo, provider, DefaultServiceConfig(), zap.NewNop())
}

func seedNoteWithEmbedding(t *testing.T, repo *mockNoteRepo, title string, vec []float32) int64 {
	t.Helper()
	n, err := repo.Create(context.Background(), &domain.Note{Title: title, Content: title})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateEmbedding(context.Background(), n.ID, vec))
	return n.ID
}

func TestSearchService_RanksBySimilarity(t *testing.T) {
	repo := newMockNoteRepo()
	near := seedNoteWithEmbedding(t, repo, "near", []float32{1, 0, 0})
	mid := seedNoteWithEmbedding(t, repo, "mid", []float32{1, 1, 0})
	far := seedNoteWithEmbedding(t, repo, "far", []float32{0, 0, 1})

	provider := &mockProvider{vectors: map[string][]float32{"query": {1, 0, 0}}}
	svc := newTestSearchService(repo, provider)

	results, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "query"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, near, results[0].ID)
	assert.Equal(t, mid, results[1].ID)
	assert.Equal(t, far, results[2].ID)
}

func TestSearchService_TieBreaksByID(t *testing.T) {
	repo := newMockNoteRepo()
	// 三条笔记向量相同，相似度必然相等
	first := seedNoteWithEmbedding(t, repo, "a", []float32{1, 0, 0})
	second := seedNoteWithEmbedding(t, repo, "b", []float32{1, 0, 0})
	third := seedNoteWithEmbedding(t, repo, "c", []float32{1, 0, 0})

	provider := &mockProvider{vectors: map[string][]float32{"q": {1, 0, 0}}}
	svc := newTestSearchService(repo, provider)

	results, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "q"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []int64{first, second, third}, []int64{results[0].ID, results[1].ID, results[2].ID})
}

func TestSearchService_ClampLimit(t *testing.T) {
	svc := &searchService{config: DefaultServiceConfig()}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, 5},
		{"negative falls back to default", -3, 5},
		{"within range kept", 17, 17},
		{"above max clamped", 500, 100},
		{"one kept", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.clampLimit(tt.limit))
		})
	}
}

func TestSearchService_UnavailableProviderReturnsEmpty(t *testing.T) {
	repo := newMockNoteRepo()
	seedNoteWithEmbedding(t, repo, "note", []float32{1, 0, 0})

	provider := &mockProvider{err: embedding.ErrUnavailable}
	svc := newTestSearchService(repo, provider)

	results, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "q"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchService_SkipsNotesWithoutEmbedding(t *testing.T) {
	repo := newMockNoteRepo()
	seedNoteWithEmbedding(t, repo, "embedded", []float32{1, 0, 0})
	_, err := repo.Create(context.Background(), noteWithContent("plain"))
	require.NoError(t, err)

	provider := &mockProvider{vectors: map[string][]float32{"q": {1, 0, 0}}}
	svc := newTestSearchService(repo, provider)

	results, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "q"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "embedded", results[0].Title)
}

// 验证任意向量集合下搜索结果按相似度降序、同分按 ID 升序

func TestProperty_SearchOrderingStable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genVec := gen.SliceOfN(3, gen.Float32Range(-1, 1))

	properties.Property("results sorted by similarity desc then id asc", prop.ForAll(
		func(vecs [][]float32) bool {
			repo := newMockNoteRepo()
			for _, v := range vecs {
				seedNoteWithEmbedding(t, repo, "note", v)
			}

			provider := &mockProvider{vectors: map[string][]float32{"q": {1, 0, 0}}}
			svc := newTestSearchService(repo, provider)

			results, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "q", Limit: 100})
			if err != nil {
				return false
			}

			return sort.SliceIsSorted(results, func(i, j int) bool {
				if results[i].Similarity != results[j].Similarity {
					return results[i].Similarity > results[j].Similarity
				}
				return results[i].ID < results[j].ID
			})
		},
		gen.SliceOf(genVec),
	))

	properties.TestingRun(t)
}

func TestSearchService_SingleflightDedupesQueryEmbedding(t *testing.T) {
	repo := newMockNoteRepo()
	seedNoteWithEmbedding(t, repo, "note", []float32{1, 0, 0})

	block := make(chan struct{})
	provider := &blockingProvider{release: block, vec: []float32{1, 0, 0}, firstCall: make(chan struct{})}
	svc := newTestSearchService(repo, provider)

	const concurrency = 8
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "same"})
			assert.NoError(t, err)
		}()
	}

	// 等首个调用进入 Embed，留出时间让其余请求挂到同一个 in-flight 上
	provider.waitForFirstCall()
	time.Sleep(200 * time.Millisecond)
	close(block)
	wg.Wait()

	assert.Less(t, provider.calls(), concurrency)
}

// blockingProvider 阻塞首个 Embed 调用直到 release 关闭
type blockingProvider struct {
	release   chan struct{}
	vec       []float32
	mu        sync.Mutex
	callCount int
	firstCall chan struct{}
	once      sync.Once
}

func (b *blockingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	b.mu.Lock()
	b.callCount++
	b.mu.Unlock()

	b.once.Do(func() {
		if b.firstCall != nil {
			close(b.firstCall)
		}
	})

	<-b.release
	return b.vec, nil
}

func (b *blockingProvider) Dimension() int { return len(b.vec) }

func (b *blockingProvider) Enabled() bool { return true }

func (b *blockingProvider) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.callCount
}

func (b *blockingProvider) waitForFirstCall() {
	if b.firstCall != nil {
		<-b.firstCall
	}
}
