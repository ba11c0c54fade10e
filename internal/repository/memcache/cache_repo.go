// Package memcache реализует кэш запросов каталога внутри процесса.
// На каждую форму запроса заводится отдельное пространство с собственными
// ключами, ограничением ёмкости, TTL и счётчиками попаданий.
package memcache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/jellydator/ttlcache/v3"
	"github.com/shopspring/decimal"
)

// Имена пространств кэша; используются только в статистике.
const (
	nsProducts      = "products"
	nsByName        = "productsByName"
	nsAllProducts   = "allProducts"
	nsByCategory    = "productsByCategory"
	nsByPriceRange  = "productsByPriceRange"
	nsCountCategory = "productCountByCategory"
)

// CacheRepo держит шесть независимых пространств. Значения после помещения
// в кэш не изменяются: при обновлении запись перезаписывается целиком.
type CacheRepo struct {
	products      *ttlcache.Cache[string, *domain.Product]
	byName        *ttlcache.Cache[string, *domain.Product]
	allPages      *ttlcache.Cache[string, *domain.ProductPage]
	categoryPages *ttlcache.Cache[string, *domain.ProductPage]
	priceRanges   *ttlcache.Cache[string, []domain.Product]
	counts        *ttlcache.Cache[string, int64]

	logger logger.Logger
}

func NewCacheRepo(cfg *cfg.CacheCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		products:      newNamespace[*domain.Product](cfg),
		byName:        newNamespace[*domain.Product](cfg),
		allPages:      newNamespace[*domain.ProductPage](cfg),
		categoryPages: newNamespace[*domain.ProductPage](cfg),
		priceRanges:   newNamespace[[]domain.Product](cfg),
		counts:        newNamespace[int64](cfg),
		logger:        logger,
	}
}

// newNamespace создаёт одно пространство кэша с политикой из конфигурации.
// Продление жизни записи при чтении отключено: запись живёт TTL с момента записи.
func newNamespace[V any](cfg *cfg.CacheCfg) *ttlcache.Cache[string, V] {
	c := ttlcache.New[string, V](
		ttlcache.WithTTL[string, V](cfg.TTL),
		ttlcache.WithCapacity[string, V](cfg.Capacity),
		ttlcache.WithDisableTouchOnHit[string, V](),
	)
	go c.Start()

	return c
}

func (r *CacheRepo) GetProduct(id int64) (*domain.Product, bool) {
	item := r.products.Get(productKey(id))
	if item == nil {
		return nil, false
	}

	return item.Value(), true
}

// SetProduct перезаписывает запись в id-пространстве новым значением.
func (r *CacheRepo) SetProduct(product *domain.Product) {
	if product == nil || product.ID == 0 {
		return
	}
	r.products.Set(productKey(product.ID), product, ttlcache.DefaultTTL)
}

func (r *CacheRepo) GetProductByName(name string) (*domain.Product, bool) {
	item := r.byName.Get(name)
	if item == nil {
		return nil, false
	}

	return item.Value(), true
}

func (r *CacheRepo) SetProductByName(product *domain.Product) {
	if product == nil || product.Name == "" {
		return
	}
	r.byName.Set(product.Name, product, ttlcache.DefaultTTL)
}

func (r *CacheRepo) GetAllPage(page, size int, sort string) (*domain.ProductPage, bool) {
	item := r.allPages.Get(allPageKey(page, size, sort))
	if item == nil {
		return nil, false
	}

	return item.Value(), true
}

func (r *CacheRepo) SetAllPage(page, size int, sort string, pg *domain.ProductPage) {
	if pg == nil {
		return
	}
	r.allPages.Set(allPageKey(page, size, sort), pg, ttlcache.DefaultTTL)
}

func (r *CacheRepo) GetCategoryPage(category string, page, size int) (*domain.ProductPage, bool) {
	item := r.categoryPages.Get(categoryPageKey(category, page, size))
	if item == nil {
		return nil, false
	}

	return item.Value(), true
}

func (r *CacheRepo) SetCategoryPage(category string, page, size int, pg *domain.ProductPage) {
	if pg == nil {
		return
	}
	r.categoryPages.Set(categoryPageKey(category, page, size), pg, ttlcache.DefaultTTL)
}

func (r *CacheRepo) GetPriceRange(minPrice, maxPrice decimal.Decimal) ([]domain.Product, bool) {
	item := r.priceRanges.Get(priceRangeKey(minPrice, maxPrice))
	if item == nil {
		return nil, false
	}

	return item.Value(), true
}

func (r *CacheRepo) SetPriceRange(minPrice, maxPrice decimal.Decimal, products []domain.Product) {
	if products == nil {
		products = []domain.Product{}
	}
	r.priceRanges.Set(priceRangeKey(minPrice, maxPrice), products, ttlcache.DefaultTTL)
}

func (r *CacheRepo) GetCategoryCount(category string) (int64, bool) {
	item := r.counts.Get(category)
	if item == nil {
		return 0, false
	}

	return item.Value(), true
}

func (r *CacheRepo) SetCategoryCount(category string, count int64) {
	r.counts.Set(category, count, ttlcache.DefaultTTL)
}

// PurgeAll целиком очищает все пространства. Грубая, но корректная инвалидация
// при удалении товара.
func (r *CacheRepo) PurgeAll() {
	r.products.DeleteAll()
	r.byName.DeleteAll()
	r.allPages.DeleteAll()
	r.categoryPages.DeleteAll()
	r.priceRanges.DeleteAll()
	r.counts.DeleteAll()
}

// Stats возвращает счётчики попаданий по каждому пространству.
func (r *CacheRepo) Stats() map[string]usecase.CacheStats {
	return map[string]usecase.CacheStats{
		nsProducts:      toStats(r.products.Metrics()),
		nsByName:        toStats(r.byName.Metrics()),
		nsAllProducts:   toStats(r.allPages.Metrics()),
		nsByCategory:    toStats(r.categoryPages.Metrics()),
		nsByPriceRange:  toStats(r.priceRanges.Metrics()),
		nsCountCategory: toStats(r.counts.Metrics()),
	}
}

// Close останавливает фоновые циклы очистки всех пространств.
func (r *CacheRepo) Close(_ context.Context) error {
	r.products.Stop()
	r.byName.Stop()
	r.allPages.Stop()
	r.categoryPages.Stop()
	r.priceRanges.Stop()
	r.counts.Stop()

	return nil
}

func toStats(m ttlcache.Metrics) usecase.CacheStats {
	return usecase.NewCacheStats(m.Hits, m.Misses, m.Insertions, m.Evictions)
}

// productKey возвращает ключ id-пространства для одного товара
func productKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// allPageKey включает поле сортировки: одна и та же страница с разными
// сортировками — разные записи кэша.
func allPageKey(page, size int, sort string) string {
	return fmt.Sprintf("%d_%d_%s", page, size, sort)
}

func categoryPageKey(category string, page, size int) string {
	return fmt.Sprintf("%s_%d_%d", category, page, size)
}

// priceRangeKey строится из строковой формы границ: 9.99 и 9.990 — разные ключи,
// точное совпадение входа обязательно.
func priceRangeKey(minPrice, maxPrice decimal.Decimal) string {
	return minPrice.String() + "_" + maxPrice.String()
}
