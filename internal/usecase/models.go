package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

// LowStockProducts — отложенный результат запроса товаров с низким остатком.
// Заполняется один раз воркером пула; ожидание — забота вызывающей стороны.
type LowStockProducts struct {
	done     chan struct{}
	products []domain.Product
	err      error
}

func NewLowStockProducts() *LowStockProducts {
	return &LowStockProducts{
		done: make(chan struct{}),
	}
}

// Complete фиксирует результат. Вызывается ровно один раз.
func (f *LowStockProducts) Complete(products []domain.Product, err error) {
	f.products = products
	f.err = err
	close(f.done)
}

// Wait блокируется до готовности результата или отмены контекста вызывающей стороны.
// Отмена контекста не прерывает сам запрос к хранилищу.
func (f *LowStockProducts) Wait(ctx context.Context) ([]domain.Product, error) {
	select {
	case <-f.done:
		return f.products, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done позволяет опрашивать готовность без блокировки.
func (f *LowStockProducts) Done() <-chan struct{} {
	return f.done
}

// CacheStats — счётчики одного пространства кэша.
type CacheStats struct {
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Insertions uint64 `json:"insertions"`
	Evictions  uint64 `json:"evictions"`
}

func NewCacheStats(hits, misses, insertions, evictions uint64) CacheStats {
	return CacheStats{
		Hits:       hits,
		Misses:     misses,
		Insertions: insertions,
		Evictions:  evictions,
	}
}
