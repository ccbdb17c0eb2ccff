package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmitRunsTask(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	var ran atomic.Bool
	err := p.Submit(context.Background(), func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.Nil(t, err)
	assert.True(t, ran.Load())
}

func TestSubmitReturnsTaskError(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown(context.Background())

	wantErr := errors.New("boom")
	err := p.Submit(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.Equal(t, wantErr, err)
}

func TestSubmitAsyncDoesNotBlock(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 4}, nil)

	var count atomic.Int64
	for i := 0; i < 3; i++ {
		err := p.SubmitAsync(context.Background(), func(ctx context.Context) error {
			count.Add(1)
			return nil
		})
		assert.Nil(t, err)
	}

	// 等待所有任务排空
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Nil(t, p.Shutdown(ctx))
	assert.Equal(t, int64(3), count.Load())
}

func TestSubmitAfterShutdown(t *testing.T) {
	p := New(nil, nil)
	assert.Nil(t, p.Shutdown(context.Background()))

	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
	assert.Equal(t, ErrWorkerPoolClosed, err)
}
