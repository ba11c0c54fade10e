package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/shopspring/decimal"
)

// CatalogUC — публичный контракт сервиса каталога.
// Все операции синхронные, кроме FindLowStockProductsAsync,
// которая возвращает отложенный результат.
type CatalogUC interface {
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	FindAllProducts(ctx context.Context, page, size int, sort string) (*domain.ProductPage, error)
	FindByCategory(ctx context.Context, category string, page, size int) (*domain.ProductPage, error)
	FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]domain.Product, error)
	FindLowStockProductsAsync(ctx context.Context, threshold int) (*LowStockProducts, error)
	UpdateStock(ctx context.Context, id int64, newStock int) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, category string) (int64, error)
	SaveAllProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error)
}
