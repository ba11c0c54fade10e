package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки асинхронного пула
	ErrPoolClosed    = fmt.Errorf("async pool is closed")
	ErrPoolSaturated = fmt.Errorf("async pool queue is full")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrProductNameRequired = fmt.Errorf("product name is required")
	ErrInvalidID           = fmt.Errorf("invalid product id")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidPriceRange   = fmt.Errorf("invalid price range")
	ErrInvalidPagination   = fmt.Errorf("invalid pagination parameters")
	ErrInvalidStock        = fmt.Errorf("stock must be non-negative")
	ErrEmptyBatch          = fmt.Errorf("empty product batch")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
