package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewProductHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, logger: logger}
}

// createProduct
//
//	@Summary		Создание нового товара
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	ProductResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	product, err := p.catalogUC.SaveProduct(r.Context(), req.toDomain())
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// getProductByID
//
//	@Summary	Получение товара по идентификатору
//	@Produce	json
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUC.FindByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// getProductByName
//
//	@Summary	Получение товара по названию
//	@Produce	json
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/name/{name} [get]
func (p *ProductHandler) getProductByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	product, err := p.catalogUC.FindByName(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// getAllProducts
//
//	@Summary	Постраничный список всех товаров
//	@Produce	json
//	@Param		page	query		int		false	"Номер страницы (с нуля)"
//	@Param		size	query		int		false	"Размер страницы"
//	@Param		sort	query		string	false	"Поле сортировки"
//	@Success	200		{object}	PageResponse
//	@Router		/products [get]
func (p *ProductHandler) getAllProducts(w http.ResponseWriter, r *http.Request) {
	const (
		defaultPage = 0
		defaultSize = 20
	)

	page, err := parseIntQuery(r.URL.Query().Get("page"), defaultPage)
	if err != nil {
		WriteError(w, err)
		return
	}

	size, err := parseIntQuery(r.URL.Query().Get("size"), defaultSize)
	if err != nil {
		WriteError(w, err)
		return
	}

	pg, err := p.catalogUC.FindAllProducts(r.Context(), page, size, r.URL.Query().Get("sort"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageResponse(pg))
}

// getProductsByCategory
//
//	@Summary	Постраничный список товаров категории
//	@Produce	json
//	@Success	200	{object}	PageResponse
//	@Router		/products/category/{category} [get]
func (p *ProductHandler) getProductsByCategory(w http.ResponseWriter, r *http.Request) {
	const (
		defaultPage = 0
		defaultSize = 20
	)

	category := chi.URLParam(r, "category")

	page, err := parseIntQuery(r.URL.Query().Get("page"), defaultPage)
	if err != nil {
		WriteError(w, err)
		return
	}

	size, err := parseIntQuery(r.URL.Query().Get("size"), defaultSize)
	if err != nil {
		WriteError(w, err)
		return
	}

	pg, err := p.catalogUC.FindByCategory(r.Context(), category, page, size)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageResponse(pg))
}

// getProductsByPriceRange
//
//	@Summary	Товары в ценовом диапазоне
//	@Produce	json
//	@Param		min	query		string	true	"Нижняя граница"
//	@Param		max	query		string	true	"Верхняя граница"
//	@Success	200	{array}		ProductResponse
//	@Failure	400	{object}	ErrorResponse
//	@Router		/products/price-range [get]
func (p *ProductHandler) getProductsByPriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, err := parsePrice(r.URL.Query().Get("min"))
	if err != nil {
		WriteError(w, err)
		return
	}

	maxPrice, err := parsePrice(r.URL.Query().Get("max"))
	if err != nil {
		WriteError(w, err)
		return
	}

	products, err := p.catalogUC.FindByPriceRange(r.Context(), minPrice, maxPrice)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// getLowStockProducts
//
//	@Summary	Товары с остатком ниже порога
//	@Produce	json
//	@Success	200	{array}	ProductResponse
//	@Router		/products/low-stock/{threshold} [get]
func (p *ProductHandler) getLowStockProducts(w http.ResponseWriter, r *http.Request) {
	threshold, err := parseNonNegativeInt(chi.URLParam(r, "threshold"))
	if err != nil {
		WriteError(w, e.ErrInvalidStock)
		return
	}

	// Запрос уходит в пул воркеров; здесь ожидается готовый результат.
	res, err := p.catalogUC.FindLowStockProductsAsync(r.Context(), threshold)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	products, err := res.Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// updateProductStock
//
//	@Summary	Обновление остатка товара
//	@Produce	json
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id}/stock/{stock} [patch]
func (p *ProductHandler) updateProductStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	stock, err := parseNonNegativeInt(chi.URLParam(r, "stock"))
	if err != nil {
		WriteError(w, e.ErrInvalidStock)
		return
	}

	product, err := p.catalogUC.UpdateStock(r.Context(), id, stock)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary	Удаление товара
//	@Success	204
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// countByCategory
//
//	@Summary	Число товаров категории
//	@Produce	json
//	@Success	200	{object}	CountResponse
//	@Router		/products/count/{category} [get]
func (p *ProductHandler) countByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	count, err := p.catalogUC.CountByCategory(r.Context(), category)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CountResponse{Category: category, Count: count})
}

// createProductsBatch
//
//	@Summary	Пакетное создание товаров
//	@Accept		json
//	@Produce	json
//	@Success	201	{array}		ProductResponse
//	@Failure	400	{object}	ErrorResponse
//	@Router		/products/batch [post]
func (p *ProductHandler) createProductsBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	products := make([]domain.Product, 0, len(reqs))
	for i := range reqs {
		products = append(products, *reqs[i].toDomain())
	}

	saved, err := p.catalogUC.SaveAllProducts(r.Context(), products)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponses(saved))
}
