package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки с векторами
	ErrEmptyVector       = fmt.Errorf("embedding vector is empty")
	ErrDimensionMismatch = fmt.Errorf("embedding dimension mismatch")

	// 400 Bad Request
	ErrTitleRequired       = fmt.Errorf("product title is required")
	ErrDescriptionRequired = fmt.Errorf("product description is required")
	ErrBrandRequired       = fmt.Errorf("product brand is required")
	ErrInvalidPrice        = fmt.Errorf("price must be a non-negative number")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidScore        = fmt.Errorf("score must be in range [0, 1]")
	ErrInvalidProductID    = fmt.Errorf("invalid product id")
	ErrInvalidLimit        = fmt.Errorf("limit must be positive")
	ErrStatusBadRequest    = fmt.Errorf("bad request")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect env variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
