package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает товар каталога
type Product struct {
	ID          int64 // 0 — товар ещё не сохранён, идентификатор присваивает хранилище
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time // выставляется сервисом один раз при первом сохранении
	UpdatedAt   time.Time // выставляется сервисом при каждом сохранении
}

func NewProduct(name, description, category string, price decimal.Decimal, stock int) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Stock:       stock,
	}
}
