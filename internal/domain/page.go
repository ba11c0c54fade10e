package domain

// ProductPage — страница результатов запроса с общим числом записей.
type ProductPage struct {
	Items      []Product
	TotalCount int64
	Page       int
	Size       int
}

func NewProductPage(items []Product, totalCount int64, page, size int) *ProductPage {
	return &ProductPage{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		Size:       size,
	}
}
