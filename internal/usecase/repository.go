package usecase

import (
	"context"

	"github.com/radhe-vastra/storefront-backend/internal/domain"
)

// ProductStore — единый контракт хранилища продуктов.
// Обе реализации (bbolt и PostgreSQL) удовлетворяют ему полностью,
// остальной код ни в одном месте не различает бэкенды.
type ProductStore interface {
	// List возвращает продукты от новых к старым; пустой срез, если их нет.
	List(ctx context.Context) ([]domain.Product, error)
	// Create сохраняет продукт, назначая id и временную метку.
	Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)
	// Update заменяет все поля, кроме id и временной метки создания.
	// Возвращает e.ErrProductNotFound, если id не существует.
	Update(ctx context.Context, id string, input *domain.ProductInput) (*domain.Product, error)
	// Delete идемпотентен: удаление отсутствующего id не является ошибкой.
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

// AssetStore загружает изображение и возвращает стабильный URL для чтения.
// Есть только у удалённого бэкенда; локальный инлайнит изображение в запись.
type AssetStore interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// AvailabilityChecker выполняет минимальную пробу чтения хранилища.
// Никогда не возвращает ошибку: результат всегда статус с диагностикой.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context) *StoreStatus
}
