package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/shopspring/decimal"
)

// defaultSort — поле сортировки по умолчанию для постраничных выборок.
const defaultSort = "id"

// CatalogUseCase реализует бизнес-логику каталога товаров: сквозное чтение
// через кэш для каждой формы запроса, перезапись кэша при обновлении остатка,
// полную инвалидацию при удалении и асинхронный запрос низких остатков.
type CatalogUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	transactor  Transactor
	pool        TaskPool
	logger      logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	transactor Transactor,
	pool TaskPool,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		transactor:  transactor,
		pool:        pool,
		logger:      logger,
	}
}

// SaveProduct сохраняет товар, проставляя отметки времени:
// CreatedAt — один раз при первом сохранении, UpdatedAt — при каждом.
// Кэш на пути создания не заполняется.
func (u *CatalogUseCase) SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const op = "CatalogUseCase.SaveProduct"

	if err := validateProduct(product); err != nil {
		return nil, e.Wrap(op, err)
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	saved, err := u.productRepo.Save(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return saved, nil
}

// FindByID возвращает товар по идентификатору со сквозным чтением через кэш.
func (u *CatalogUseCase) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "CatalogUseCase.FindByID"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}

	if product, ok := u.cacheRepo.GetProduct(id); ok {
		return product, nil
	}

	u.logger.Debugf("finding product by id: %d", id)
	product, err := u.productRepo.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.cacheRepo.SetProduct(product)
	return product, nil
}

// FindByName возвращает товар по названию со сквозным чтением через кэш.
func (u *CatalogUseCase) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	const op = "CatalogUseCase.FindByName"

	if strings.TrimSpace(name) == "" {
		return nil, e.Wrap(op, e.ErrProductNameRequired)
	}

	if product, ok := u.cacheRepo.GetProductByName(name); ok {
		return product, nil
	}

	u.logger.Debugf("finding product by name: %s", name)
	product, err := u.productRepo.GetByName(ctx, name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.cacheRepo.SetProductByName(product)
	return product, nil
}

// FindAllProducts возвращает страницу каталога. Ключ кэша включает поле
// сортировки: разные сортировки — разные результаты.
func (u *CatalogUseCase) FindAllProducts(ctx context.Context, page, size int, sort string) (*domain.ProductPage, error) {
	const op = "CatalogUseCase.FindAllProducts"

	if err := validatePagination(page, size); err != nil {
		return nil, e.Wrap(op, err)
	}
	if sort == "" {
		sort = defaultSort
	}

	if pg, ok := u.cacheRepo.GetAllPage(page, size, sort); ok {
		return pg, nil
	}

	u.logger.Debugf("finding all products: page=%d size=%d sort=%s", page, size, sort)
	pg, err := u.productRepo.GetAll(ctx, page, size, sort)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.cacheRepo.SetAllPage(page, size, sort, pg)
	return pg, nil
}

// FindByCategory возвращает страницу товаров категории со сквозным чтением через кэш.
func (u *CatalogUseCase) FindByCategory(ctx context.Context, category string, page, size int) (*domain.ProductPage, error) {
	const op = "CatalogUseCase.FindByCategory"

	if err := validatePagination(page, size); err != nil {
		return nil, e.Wrap(op, err)
	}

	if pg, ok := u.cacheRepo.GetCategoryPage(category, page, size); ok {
		return pg, nil
	}

	u.logger.Debugf("finding products by category: %s page=%d size=%d", category, page, size)
	pg, err := u.productRepo.GetByCategory(ctx, category, page, size)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.cacheRepo.SetCategoryPage(category, page, size, pg)
	return pg, nil
}

// FindByPriceRange возвращает товары в ценовом диапазоне (включительно),
// упорядоченные по возрастанию цены.
func (u *CatalogUseCase) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]domain.Product, error) {
	const op = "CatalogUseCase.FindByPriceRange"

	if minPrice.IsNegative() || maxPrice.LessThan(minPrice) {
		return nil, e.Wrap(op, e.ErrInvalidPriceRange)
	}

	if products, ok := u.cacheRepo.GetPriceRange(minPrice, maxPrice); ok {
		return products, nil
	}

	u.logger.Debugf("finding products by price range: %s - %s", minPrice, maxPrice)
	products, err := u.productRepo.GetByPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.cacheRepo.SetPriceRange(minPrice, maxPrice, products)
	return products, nil
}

// FindLowStockProductsAsync ставит запрос товаров с остатком ниже порога
// в пул воркеров и сразу возвращает отложенный результат. Результат не кэшируется.
// Отмена вызывающего контекста не доходит до запроса к хранилищу.
func (u *CatalogUseCase) FindLowStockProductsAsync(ctx context.Context, threshold int) (*LowStockProducts, error) {
	const op = "CatalogUseCase.FindLowStockProductsAsync"

	if threshold < 0 {
		return nil, e.Wrap(op, e.ErrInvalidStock)
	}

	u.logger.Debugf("dispatching low stock query: threshold=%d", threshold)

	res := NewLowStockProducts()
	taskCtx := context.WithoutCancel(ctx)

	err := u.pool.Submit(func() {
		products, err := u.productRepo.GetByStockBelow(taskCtx, threshold)
		if err != nil {
			res.Complete(nil, e.Wrap(op, err))
			return
		}
		res.Complete(products, nil)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// UpdateStock устанавливает новый остаток товара. Запись в id-пространстве кэша
// перезаписывается новым значением, а не вытесняется.
func (u *CatalogUseCase) UpdateStock(ctx context.Context, id int64, newStock int) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateStock"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}
	if newStock < 0 {
		return nil, e.Wrap(op, e.ErrInvalidStock)
	}

	product, err := u.productRepo.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product.Stock = newStock
	product.UpdatedAt = time.Now().UTC()

	saved, err := u.productRepo.Save(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	u.cacheRepo.SetProduct(saved)
	return saved, nil
}

// DeleteProduct удаляет товар и целиком очищает все пространства кэша:
// производные выборки, содержащие удалённую запись, адресно не находятся.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.DeleteProduct"

	if id <= 0 {
		return e.Wrap(op, e.ErrInvalidID)
	}

	u.logger.Debugf("deleting product: id=%d", id)
	if err := u.productRepo.DeleteByID(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	u.cacheRepo.PurgeAll()
	return nil
}

// CountByCategory возвращает число товаров категории со сквозным чтением через кэш.
func (u *CatalogUseCase) CountByCategory(ctx context.Context, category string) (int64, error) {
	const op = "CatalogUseCase.CountByCategory"

	if count, ok := u.cacheRepo.GetCategoryCount(category); ok {
		return count, nil
	}

	u.logger.Debugf("counting products by category: %s", category)
	count, err := u.productRepo.Count(ctx, category)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	u.cacheRepo.SetCategoryCount(category, count)
	return count, nil
}

// SaveAllProducts сохраняет партию товаров в одной транзакции хранилища.
// Все элементы партии получают одно общее «сейчас».
func (u *CatalogUseCase) SaveAllProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	const op = "CatalogUseCase.SaveAllProducts"

	if len(products) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyBatch)
	}
	for i := range products {
		if err := validateProduct(&products[i]); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	now := time.Now().UTC()
	for i := range products {
		if products[i].CreatedAt.IsZero() {
			products[i].CreatedAt = now
		}
		products[i].UpdatedAt = now
	}

	ctx, tx, err := u.transactor.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				u.logger.Warnf("rollback failed: %v", e.Wrap(op, rbErr))
			}
		}
	}()

	var saved []domain.Product
	saved, err = u.productRepo.SaveAll(ctx, products)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return saved, nil
}

// validateProduct проверяет корректность данных товара перед сохранением.
func validateProduct(product *domain.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return e.ErrProductNameRequired
	}

	if product.Price.IsNegative() {
		return e.ErrInvalidPrice
	}

	if product.Stock < 0 {
		return e.ErrInvalidStock
	}

	return nil
}

// validatePagination проверяет параметры постраничной выборки.
func validatePagination(page, size int) error {
	const maxPageSize = 1000

	if page < 0 || size <= 0 || size > maxPageSize {
		return e.ErrInvalidPagination
	}

	return nil
}
