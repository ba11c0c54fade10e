// Package seed наполняет пустой каталог демонстрационными данными при старте.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/shopspring/decimal"
)

var categories = []string{
	"Electronics", "Clothing", "Books", "Home", "Sports",
	"Toys", "Beauty", "Grocery", "Automotive", "Garden",
}

var productNames = []string{
	"Smartphone", "Laptop", "Headphones", "T-shirt", "Jeans",
	"Novel", "Textbook", "Sofa", "Chair", "Basketball",
	"Football", "Doll", "Action Figure", "Shampoo", "Lotion",
	"Bread", "Milk", "Car Parts", "Tools", "Plants",
}

// Loader генерирует демонстрационные товары и сохраняет их партиями
// через сервис каталога, чтобы отметки времени проставлялись штатным путём.
type Loader struct {
	catalogUC   usecase.CatalogUC
	productRepo usecase.ProductRepository
	cfg         *cfg.SeedCfg
	logger      logger.Logger
}

func NewLoader(
	catalogUC usecase.CatalogUC,
	productRepo usecase.ProductRepository,
	cfg *cfg.SeedCfg,
	logger logger.Logger,
) *Loader {
	return &Loader{
		catalogUC:   catalogUC,
		productRepo: productRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Run загружает демонстрационные данные, если загрузка включена
// и каталог ещё пуст.
func (l *Loader) Run(ctx context.Context) error {
	const op = "seed.Loader.Run"

	if !l.cfg.Enabled {
		return nil
	}

	exists, err := l.productRepo.ExistsAny(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}
	if exists {
		l.logger.Infof("data already loaded, skipping seed")
		return nil
	}

	l.logger.Infof("loading %d sample products...", l.cfg.Count)

	for start := 0; start < l.cfg.Count; start += l.cfg.BatchSize {
		end := start + l.cfg.BatchSize
		if end > l.cfg.Count {
			end = l.cfg.Count
		}

		batch := make([]domain.Product, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, *sampleProduct(i + 1))
		}

		if _, err := l.catalogUC.SaveAllProducts(ctx, batch); err != nil {
			return e.Wrap(op, err)
		}
	}

	l.logger.Infof("sample data loaded: %d products", l.cfg.Count)
	return nil
}

func sampleProduct(n int) *domain.Product {
	name := fmt.Sprintf("%s %d", productNames[rand.Intn(len(productNames))], n)

	return domain.NewProduct(
		name,
		"Description for "+name,
		categories[rand.Intn(len(categories))],
		decimal.NewFromInt(10+rand.Int63n(990)),
		rand.Intn(1000),
	)
}
