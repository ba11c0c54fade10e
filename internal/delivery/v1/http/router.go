package http

import (
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cacheRepo usecase.CacheRepository) {
	r.router.Use(RequestID)
	r.router.Use(AccessLog(r.logger))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(catalogUC, r.logger)
		registerProductRoutes(v1, prHandler)

		cacheHandler := NewCacheStatsHandler(cacheRepo)
		v1.Get("/cache/stats", cacheHandler.stats)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.createProduct)
		pr.Post("/batch", prHandler.createProductsBatch)
		pr.Get("/", prHandler.getAllProducts)
		pr.Get("/{id:[0-9]+}", prHandler.getProductByID)
		pr.Get("/name/{name}", prHandler.getProductByName)
		pr.Get("/category/{category}", prHandler.getProductsByCategory)
		pr.Get("/price-range", prHandler.getProductsByPriceRange)
		pr.Get("/low-stock/{threshold}", prHandler.getLowStockProducts)
		pr.Get("/count/{category}", prHandler.countByCategory)
		pr.Patch("/{id}/stock/{stock}", prHandler.updateProductStock)
		pr.Delete("/{id}", prHandler.deleteProduct)
	})
}
