package pgdb

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

// PgxTransactor открывает транзакции PostgreSQL для usecase-слоя.
// Объект pgx.Tx кладётся в контекст и извлекается репозиторием через pkg/tr.
type PgxTransactor struct {
	pool transaction.Transactional
}

func NewPgxTransactor(pool transaction.Transactional) *PgxTransactor {
	return &PgxTransactor{pool: pool}
}

func (t *PgxTransactor) Begin(ctx context.Context) (context.Context, usecase.Tx, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, t.pool)
	if err != nil {
		return ctx, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return context.WithValue(ctx, "tx", tx.Transaction()), tx, nil
}
