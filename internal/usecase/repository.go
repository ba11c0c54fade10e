package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductRepository — хранилище товаров.
// Точечные выборки возвращают e.ErrProductNotFound при отсутствии записи.
type ProductRepository interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	GetAll(ctx context.Context, page, size int, sort string) (*domain.ProductPage, error)
	GetByCategory(ctx context.Context, category string, page, size int) (*domain.ProductPage, error)
	GetByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]domain.Product, error)
	GetByStockBelow(ctx context.Context, threshold int) ([]domain.Product, error)
	Count(ctx context.Context, category string) (int64, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	SaveAll(ctx context.Context, products []domain.Product) ([]domain.Product, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsAny(ctx context.Context) (bool, error)
}

// CacheRepository — кэш запросов каталога, по одному пространству на форму запроса.
// Все методы безопасны для конкурентного вызова и не блокируются на внешних ресурсах.
type CacheRepository interface {
	GetProduct(id int64) (*domain.Product, bool)
	SetProduct(product *domain.Product)
	GetProductByName(name string) (*domain.Product, bool)
	SetProductByName(product *domain.Product)
	GetAllPage(page, size int, sort string) (*domain.ProductPage, bool)
	SetAllPage(page, size int, sort string, pg *domain.ProductPage)
	GetCategoryPage(category string, page, size int) (*domain.ProductPage, bool)
	SetCategoryPage(category string, page, size int, pg *domain.ProductPage)
	GetPriceRange(minPrice, maxPrice decimal.Decimal) ([]domain.Product, bool)
	SetPriceRange(minPrice, maxPrice decimal.Decimal, products []domain.Product)
	GetCategoryCount(category string) (int64, bool)
	SetCategoryCount(category string, count int64)

	// PurgeAll очищает все пространства целиком. Используется при удалении товара:
	// сервис не знает, какие производные выборки содержат удалённую запись.
	PurgeAll()
	Stats() map[string]CacheStats
}
