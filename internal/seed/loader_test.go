package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type fakeCatalogUC struct {
	usecase.CatalogUC
	batches [][]domain.Product
}

func (f *fakeCatalogUC) SaveAllProducts(_ context.Context, products []domain.Product) ([]domain.Product, error) {
	f.batches = append(f.batches, products)
	return products, nil
}

type fakeRepo struct {
	usecase.ProductRepository
	exists bool
}

func (f *fakeRepo) ExistsAny(context.Context) (bool, error) {
	return f.exists, nil
}

func TestLoader_SkipsWhenDisabled(t *testing.T) {
	uc := &fakeCatalogUC{}
	loader := NewLoader(uc, &fakeRepo{}, &cfg.SeedCfg{Enabled: false}, nopLogger{})

	require.NoError(t, loader.Run(context.Background()))
	assert.Empty(t, uc.batches)
}

func TestLoader_SkipsWhenDataExists(t *testing.T) {
	uc := &fakeCatalogUC{}
	loader := NewLoader(uc, &fakeRepo{exists: true}, &cfg.SeedCfg{Enabled: true, Count: 100, BatchSize: 10}, nopLogger{})

	require.NoError(t, loader.Run(context.Background()))
	assert.Empty(t, uc.batches)
}

func TestLoader_LoadsInBatches(t *testing.T) {
	uc := &fakeCatalogUC{}
	loader := NewLoader(uc, &fakeRepo{}, &cfg.SeedCfg{Enabled: true, Count: 25, BatchSize: 10}, nopLogger{})

	require.NoError(t, loader.Run(context.Background()))

	require.Len(t, uc.batches, 3)
	assert.Len(t, uc.batches[0], 10)
	assert.Len(t, uc.batches[1], 10)
	assert.Len(t, uc.batches[2], 5)

	var total int
	for _, b := range uc.batches {
		for _, p := range b {
			assert.NotEmpty(t, p.Name)
			assert.NotEmpty(t, p.Category)
			assert.False(t, p.Price.IsNegative())
			assert.GreaterOrEqual(t, p.Stock, 0)
			total++
		}
	}
	assert.Equal(t, 25, total)
}
