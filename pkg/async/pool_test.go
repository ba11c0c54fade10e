package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-service/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(2, 10, nopLogger{})

	var (
		mu      sync.Mutex
		results []int
		wg      sync.WaitGroup
	)
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		require.NoError(t, p.Submit(func() {
			defer wg.Done()
			mu.Lock()
			results = append(results, i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	assert.Len(t, results, 5)
	assert.Equal(t, uint64(5), p.Submitted())

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, uint64(5), p.Completed())
}

func TestPool_SaturatedQueue(t *testing.T) {
	p := NewPool(1, 1, nopLogger{})
	defer p.Shutdown(context.Background())

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func() {
		close(started)
		<-block
	}))
	<-started

	// воркер занят; очередь вмещает ровно одну задачу
	require.NoError(t, p.Submit(func() {}))

	err := p.Submit(func() {})
	assert.ErrorIs(t, err, e.ErrPoolSaturated)

	close(block)
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := NewPool(1, 1, nopLogger{})
	require.NoError(t, p.Shutdown(context.Background()))

	err := p.Submit(func() {})
	assert.ErrorIs(t, err, e.ErrPoolClosed)
}

func TestPool_ShutdownWaitsForAccepted(t *testing.T) {
	p := NewPool(1, 10, nopLogger{})

	done := make(chan struct{})
	require.NoError(t, p.Submit(func() {
		time.Sleep(20 * time.Millisecond)
		close(done)
	}))

	require.NoError(t, p.Shutdown(context.Background()))

	select {
	case <-done:
	default:
		t.Fatal("shutdown returned before the accepted task finished")
	}
}

func TestPool_ShutdownHonorsContext(t *testing.T) {
	p := NewPool(1, 1, nopLogger{})

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func() {
		close(started)
		<-block
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
}

func TestPool_RecoversFromPanic(t *testing.T) {
	p := NewPool(1, 10, nopLogger{})

	require.NoError(t, p.Submit(func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, p.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive a panicking task")
	}

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestPool_DefaultSizes(t *testing.T) {
	p := NewPool(0, 0, nopLogger{})
	defer p.Shutdown(context.Background())

	done := make(chan struct{})
	require.NoError(t, p.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("default-sized pool did not run the task")
	}
}
