// Package async предоставляет пул воркеров с ограниченной очередью задач
// для выполнения запросов вне потока вызывающей стороны.
package async

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

// Pool — пул воркеров фиксированного размера.
// Submit не блокируется: при переполненной очереди возвращается ошибка.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	closed atomic.Bool

	submitted atomic.Uint64
	completed atomic.Uint64

	logger logger.Logger
}

func NewPool(workers, queueSize int, logger logger.Logger) *Pool {
	const (
		defaultWorkers   = 4
		defaultQueueSize = 64
	)

	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	p := &Pool{
		tasks:  make(chan func(), queueSize),
		logger: logger,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit ставит задачу в очередь пула.
// Возвращает e.ErrPoolClosed после Shutdown и e.ErrPoolSaturated при заполненной очереди.
func (p *Pool) Submit(task func()) error {
	if p.closed.Load() {
		return e.ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		p.submitted.Add(1)
		return nil
	default:
		return e.ErrPoolSaturated
	}
}

// Submitted возвращает количество принятых задач.
func (p *Pool) Submitted() uint64 {
	return p.submitted.Load()
}

// Completed возвращает количество завершённых задач.
func (p *Pool) Completed() uint64 {
	return p.completed.Load()
}

// Shutdown прекращает приём задач и дожидается завершения уже принятых.
// Вызывающая сторона должна остановить источники Submit до Shutdown.
func (p *Pool) Shutdown(ctx context.Context) error {
	if p.closed.Swap(true) {
		return nil
	}
	close(p.tasks)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnf("async task panicked: %v", r)
		}
	}()

	task()
	p.completed.Add(1)
}
