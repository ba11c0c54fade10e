package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const productColumns = "id, name, description, category, price, stock, created_at, updated_at"

// sortColumns — разрешённые поля сортировки постраничной выборки.
// Неизвестное поле заменяется на id, чтобы не собирать SQL из пользовательского ввода.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"category":   "category",
	"price":      "price",
	"stock":      "stock",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

// ProductRepo реализует хранилище товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Get возвращает товар по идентификатору или e.ErrProductNotFound.
func (p *ProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	model, err := p.scanOne(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return p.conv.ToEntity(model), nil
}

// GetByName возвращает первый товар с данным названием.
// Уникальность названия на уровне данных не гарантируется.
func (p *ProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE name = $1 ORDER BY id LIMIT 1", productColumns)

	model, err := p.scanOne(p.pool.QueryRow(ctx, query, name))
	if err != nil {
		return nil, err
	}

	return p.conv.ToEntity(model), nil
}

// GetAll возвращает страницу каталога с общим числом записей.
func (p *ProductRepo) GetAll(ctx context.Context, page, size int, sort string) (*domain.ProductPage, error) {
	column, ok := sortColumns[sort]
	if !ok {
		column = "id"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM products ORDER BY %s LIMIT $1 OFFSET $2",
		productColumns, column,
	)

	items, err := p.queryProducts(ctx, query, size, page*size)
	if err != nil {
		return nil, err
	}

	total, err := p.countAll(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewProductPage(items, total, page, size), nil
}

// GetByCategory возвращает страницу товаров категории в порядке добавления.
func (p *ProductRepo) GetByCategory(ctx context.Context, category string, page, size int) (*domain.ProductPage, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE category = $1 ORDER BY id LIMIT $2 OFFSET $3",
		productColumns,
	)

	items, err := p.queryProducts(ctx, query, category, size, page*size)
	if err != nil {
		return nil, err
	}

	total, err := p.Count(ctx, category)
	if err != nil {
		return nil, err
	}

	return domain.NewProductPage(items, total, page, size), nil
}

// GetByPriceRange возвращает товары с ценой в диапазоне (включительно),
// упорядоченные по возрастанию цены.
func (p *ProductRepo) GetByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]domain.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE price BETWEEN $1 AND $2 ORDER BY price",
		productColumns,
	)

	return p.queryProducts(ctx, query, minPrice, maxPrice)
}

// GetByStockBelow возвращает товары с остатком строго ниже порога.
func (p *ProductRepo) GetByStockBelow(ctx context.Context, threshold int) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE stock < $1 ORDER BY id", productColumns)

	return p.queryProducts(ctx, query, threshold)
}

// Count возвращает число товаров категории.
func (p *ProductRepo) Count(ctx context.Context, category string) (int64, error) {
	var count int64
	err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE category = $1", category).Scan(&count)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

// Save создаёт товар (id == 0, идентификатор присваивает база)
// или обновляет существующий. Обновление несуществующего id — e.ErrProductNotFound.
func (p *ProductRepo) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)

	var row pgx.Row
	if model.ID == 0 {
		query := fmt.Sprintf(`
			INSERT INTO products (name, description, category, price, stock, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING %s`, productColumns)
		row = p.pool.QueryRow(ctx, query,
			model.Name, model.Description, model.Category,
			model.Price, model.Stock, model.CreatedAt, model.UpdatedAt,
		)
	} else {
		query := fmt.Sprintf(`
			UPDATE products
			SET name = $2, description = $3, category = $4, price = $5, stock = $6,
				created_at = $7, updated_at = $8
			WHERE id = $1
			RETURNING %s`, productColumns)
		row = p.pool.QueryRow(ctx, query,
			model.ID, model.Name, model.Description, model.Category,
			model.Price, model.Stock, model.CreatedAt, model.UpdatedAt,
		)
	}

	saved, err := p.scanOne(row)
	if err != nil {
		return nil, err
	}

	return p.conv.ToEntity(saved), nil
}

// SaveAll сохраняет партию товаров одним батчем внутри транзакции из контекста.
// Партия либо фиксируется целиком, либо откатывается.
func (p *ProductRepo) SaveAll(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO products (name, description, category, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, productColumns)
	updateQuery := fmt.Sprintf(`
		UPDATE products
		SET name = $2, description = $3, category = $4, price = $5, stock = $6,
			created_at = $7, updated_at = $8
		WHERE id = $1
		RETURNING %s`, productColumns)

	batch := &pgx.Batch{}
	for i := range products {
		model := p.conv.ToModel(&products[i])
		if model.ID == 0 {
			batch.Queue(insertQuery,
				model.Name, model.Description, model.Category,
				model.Price, model.Stock, model.CreatedAt, model.UpdatedAt,
			)
		} else {
			batch.Queue(updateQuery,
				model.ID, model.Name, model.Description, model.Category,
				model.Price, model.Stock, model.CreatedAt, model.UpdatedAt,
			)
		}
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	saved := make([]domain.Product, 0, len(products))
	for range products {
		model, err := p.scanOne(br.QueryRow())
		if err != nil {
			return nil, err
		}

		saved = append(saved, *p.conv.ToEntity(model))
	}

	return saved, nil
}

// DeleteByID удаляет товар по идентификатору. Отсутствие записи не считается ошибкой.
func (p *ProductRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, err := p.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ExistsAny сообщает, есть ли в каталоге хотя бы один товар.
func (p *ProductRepo) ExistsAny(ctx context.Context) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM products)").Scan(&exists)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func (p *ProductRepo) countAll(ctx context.Context) (int64, error) {
	var count int64
	err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

func (p *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.Category,
			&model.Price, &model.Stock, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) scanOne(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.Category,
		&model.Price, &model.Stock, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &model, nil
}
