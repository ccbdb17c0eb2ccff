package service

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/echovault/internal/domain"
	"github.com/haierkeys/echovault/internal/embedding"
	"github.com/haierkeys/echovault/internal/push"
)

// mockNoteRepo 内存实现，保持 ID 升序语义
type mockNoteRepo struct {
	domain.NoteRepository

	mu     sync.Mutex
	nextID int64
	notes  map[int64]*domain.Note
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{nextID: 1, notes: make(map[int64]*domain.Note)}
}

func (m *mockNoteRepo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := *note
	n.ID = m.nextID
	n.CreatedAt = time.Now().UTC()
	n.UpdatedAt = n.CreatedAt
	m.nextID++
	m.notes[n.ID] = &n

	cp := n
	return &cp, nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *mockNoteRepo) List(ctx context.Context, skip, limit int) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Note
	for id := int64(1); id < m.nextID; id++ {
		if n, ok := m.notes[id]; ok {
			cp := *n
			out = append(out, &cp)
		}
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockNoteRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.notes)), nil
}

func (m *mockNoteRepo) Update(ctx context.Context, id int64, update *domain.NoteUpdate) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.Title != nil {
		n.Title = *update.Title
	}
	if update.Content != nil {
		n.Content = *update.Content
	}
	n.UpdatedAt = time.Now().UTC()

	cp := *n
	return &cp, nil
}

func (m *mockNoteRepo) UpdateEmbedding(ctx context.Context, id int64, emb []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.notes[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.Embedding = emb
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepo) ListWithEmbedding(ctx context.Context) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Note
	for id := int64(1); id < m.nextID; id++ {
		if n, ok := m.notes[id]; ok && len(n.Embedding) > 0 {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockNoteRepo) ListMissingEmbedding(ctx context.Context, limit int) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Note
	for id := int64(1); id < m.nextID; id++ {
		if n, ok := m.notes[id]; ok && len(n.Embedding) == 0 {
			cp := *n
			out = append(out, &cp)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// mockSubRepo 内存订阅仓储
type mockSubRepo struct {
	domain.SubscriptionRepository

	mu     sync.Mutex
	nextID int64
	subs   map[int64]*domain.PushSubscription
}

func newMockSubRepo() *mockSubRepo {
	return &mockSubRepo{nextID: 1, subs: make(map[int64]*domain.PushSubscription)}
}

func (m *mockSubRepo) UpsertByEndpoint(ctx context.Context, sub *domain.PushSubscription) (*domain.PushSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.subs {
		if s.Endpoint == sub.Endpoint {
			cp := *s
			return &cp, nil
		}
	}

	s := *sub
	s.ID = m.nextID
	s.CreatedAt = time.Now().UTC()
	m.nextID++
	m.subs[s.ID] = &s

	cp := s
	return &cp, nil
}

func (m *mockSubRepo) List(ctx context.Context) ([]*domain.PushSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.PushSubscription
	for id := int64(1); id < m.nextID; id++ {
		if s, ok := m.subs[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSubRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.subs, id)
	return nil
}

func (m *mockSubRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.subs)), nil
}

// mockProvider 返回固定向量表查询结果
type mockProvider struct {
	vectors   map[string][]float32
	err       error
	callCount int
	mu        sync.Mutex
}

func (m *mockProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockProvider) Dimension() int { return 3 }

func (m *mockProvider) Enabled() bool { return true }

// mockSender 按端点返回预设结果
type mockSender struct {
	mu      sync.Mutex
	results map[string]push.Result
	sent    []string
}

func (m *mockSender) Send(ctx context.Context, sub *domain.PushSubscription, payload *push.Payload) push.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, sub.Endpoint)
	if r, ok := m.results[sub.Endpoint]; ok {
		return r
	}
	return push.Delivered
}

func (m *mockSender) Enabled() bool { return true }

var _ embedding.Provider = (*mockProvider)(nil)
var _ push.Sender = (*mockSender)(nil)

func subWithEndpoint(endpoint string) *domain.PushSubscription {
	return &domain.PushSubscription{
		Endpoint: endpoint,
		P256dh:   "p256dh-key",
		Auth:     "auth-secret",
	}
}

func noteWithContent(content string) *domain.Note {
	return &domain.Note{Title: "note", Content: content}
}
