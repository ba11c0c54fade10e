package usecase

import "context"

// TaskPool — диспетчер фоновых задач.
// Submit возвращает ошибку, если пул остановлен или очередь заполнена.
type TaskPool interface {
	Submit(task func()) error
}

// Transactor открывает транзакцию хранилища и кладёт её в контекст,
// чтобы репозиторий мог выполнить несколько операций атомарно.
type Transactor interface {
	Begin(ctx context.Context) (context.Context, Tx, error)
}

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	IsActive() bool
}
