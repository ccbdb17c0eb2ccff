package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/echovault/internal/dto"
	"github.com/haierkeys/echovault/internal/embedding"
	"github.com/haierkeys/echovault/pkg/app"
	"github.com/haierkeys/echovault/pkg/code"
	"github.com/haierkeys/echovault/pkg/workerpool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPool(t *testing.T) *workerpool.Pool {
	t.Helper()
	pool := workerpool.New(&workerpool.Config{MaxWorkers: 2, QueueSize: 32}, zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pool.Shutdown(ctx)
	})
	return pool
}

func newTestNoteService(t *testing.T, repo *mockNoteRepo, provider *mockProvider, sender *mockSender, subRepo *mockSubRepo) NoteService {
	t.Helper()
	logger := zap.NewNop()
	notify := NewNotifyService(subRepo, sender, logger)
	return NewNoteService(repo, provider, notify, newTestPool(t), DefaultServiceConfig(), logger)
}

func TestNoteService_CreateAssignsUniqueIDs(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(t, repo, &mockProvider{}, &mockSender{}, newMockSubRepo())

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
			Title:   "note",
			Content: "content",
		})
		require.NoError(t, err)
		assert.False(t, seen[note.ID], "id %d assigned twice", note.ID)
		seen[note.ID] = true
	}
}

func TestNoteService_CreateTriggersEmbedAndNotify(t *testing.T) {
	repo := newMockNoteRepo()
	provider := &mockProvider{vectors: map[string][]float32{"hello": {0.5, 0.5, 0}}}
	sender := &mockSender{}
	subRepo := newMockSubRepo()

	logger := zap.NewNop()
	pool := workerpool.New(&workerpool.Config{MaxWorkers: 2, QueueSize: 32}, logger)
	notify := NewNotifyService(subRepo, sender, logger)
	svc := NewNoteService(repo, provider, notify, pool, DefaultServiceConfig(), logger)

	_, err := subRepo.UpsertByEndpoint(context.Background(), subWithEndpoint("https://push.example.com/a"))
	require.NoError(t, err)

	note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Title:   "greeting",
		Content: "hello",
	})
	require.NoError(t, err)

	// 等待队列排空
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))

	stored, err := repo.GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5, 0}, stored.Embedding)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, []string{"https://push.example.com/a"}, sender.sent)
}

func TestNoteService_CreateDeferredWorkOutlivesRequestContext(t *testing.T) {
	repo := newMockNoteRepo()
	provider := &mockProvider{vectors: map[string][]float32{"hello": {1, 0, 0}}}
	sender := &mockSender{}
	subRepo := newMockSubRepo()

	logger := zap.NewNop()
	pool := workerpool.New(&workerpool.Config{MaxWorkers: 1, QueueSize: 8}, logger)
	notify := NewNotifyService(subRepo, sender, logger)
	svc := NewNoteService(repo, provider, notify, pool, DefaultServiceConfig(), logger)

	_, err := subRepo.UpsertByEndpoint(context.Background(), subWithEndpoint("https://push.example.com/a"))
	require.NoError(t, err)

	// 占住唯一的 worker，保证派发任务在请求上下文取消后才被执行
	release := make(chan struct{})
	require.NoError(t, pool.SubmitAsync(context.Background(), func(context.Context) error {
		<-release
		return nil
	}))

	reqCtx, cancel := context.WithCancel(context.Background())
	note, err := svc.Create(reqCtx, &dto.NoteCreateRequest{
		Title:   "greeting",
		Content: "hello",
	})
	require.NoError(t, err)

	// 响应写出后请求上下文即被取消
	cancel()
	close(release)

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	require.NoError(t, pool.Shutdown(ctx))

	stored, err := repo.GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, stored.Embedding)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Equal(t, []string{"https://push.example.com/a"}, sender.sent)
}

func TestNoteService_CreateSucceedsWhenEmbeddingUnavailable(t *testing.T) {
	repo := newMockNoteRepo()
	provider := &mockProvider{err: embedding.ErrUnavailable}
	svc := newTestNoteService(t, repo, provider, &mockSender{}, newMockSubRepo())

	note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Title:   "offline",
		Content: "no provider",
	})
	require.NoError(t, err)
	assert.NotZero(t, note.ID)
}

func TestNoteService_GetNotFound(t *testing.T) {
	svc := newTestNoteService(t, newMockNoteRepo(), &mockProvider{}, &mockSender{}, newMockSubRepo())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_PartialUpdate(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(t, repo, &mockProvider{}, &mockSender{}, newMockSubRepo())

	note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Title:   "original title",
		Content: "original content",
	})
	require.NoError(t, err)

	newTitle := "renamed"
	updated, err := svc.Update(context.Background(), note.ID, &dto.NoteUpdateRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "original content", updated.Content)
}

func TestNoteService_UpdateNotFound(t *testing.T) {
	svc := newTestNoteService(t, newMockNoteRepo(), &mockProvider{}, &mockSender{}, newMockSubRepo())

	title := "x"
	_, err := svc.Update(context.Background(), 999, &dto.NoteUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, code.ErrorNoteNotFound)
}

func TestNoteService_DoubleDelete(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(t, repo, &mockProvider{}, &mockSender{}, newMockSubRepo())

	note, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
		Title:   "to delete",
		Content: "bye",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), note.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), note.ID), code.ErrorNoteNotFound)
}

func TestNoteService_ListPagination(t *testing.T) {
	repo := newMockNoteRepo()
	svc := newTestNoteService(t, repo, &mockProvider{}, &mockSender{}, newMockSubRepo())

	for i := 0; i < 7; i++ {
		_, err := svc.Create(context.Background(), &dto.NoteCreateRequest{
			Title:   "note",
			Content: "content",
		})
		require.NoError(t, err)
	}

	list, count, err := svc.List(context.Background(), &app.Pager{Skip: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(5), list[2].ID)
}

func TestNoteService_BackfillEmbeddings(t *testing.T) {
	repo := newMockNoteRepo()
	provider := &mockProvider{vectors: map[string][]float32{}}
	svc := newTestNoteService(t, repo, provider, &mockSender{}, newMockSubRepo())

	for i := 0; i < 3; i++ {
		_, err := repo.Create(context.Background(), noteWithContent("pending"))
		require.NoError(t, err)
	}

	done, err := svc.BackfillEmbeddings(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, done)

	missing, err := repo.ListMissingEmbedding(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, missing)
}
