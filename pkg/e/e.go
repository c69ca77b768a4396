package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownStoreBackend  = fmt.Errorf("unknown store backend")

	// 400 Bad Request
	ErrTitleRequired        = fmt.Errorf("product title is required")
	ErrDescriptionRequired  = fmt.Errorf("product description is required")
	ErrInvalidPrice         = fmt.Errorf("price must be a non-negative number")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrNoSizes              = fmt.Errorf("at least one size is required")
	ErrNoImage              = fmt.Errorf("product image is required")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data request")
	ErrNoFile               = fmt.Errorf("no file provided")
	ErrFileTooLarge         = fmt.Errorf("file exceeds maximum allowed size")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrConfirmationRequired = fmt.Errorf("explicit confirmation is required")

	// 401 Unauthorized
	ErrWrongPassphrase = fmt.Errorf("wrong admin passphrase")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 409 Conflict
	ErrOperationInFlight = fmt.Errorf("another mutation is still in flight")

	// 503 Service Unavailable
	ErrStoreNotInitialized = fmt.Errorf("product store is not initialized")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
