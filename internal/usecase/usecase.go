package usecase

import (
	"context"

	"github.com/radhe-vastra/storefront-backend/internal/domain"
)

// AdminUC — операции админ-поверхности: черновик продукта, гейт валидации
// и последовательность create-or-update через шлюз хранилища.
type AdminUC interface {
	SetDraft(input *domain.ProductInput)
	BeginEdit(ctx context.Context, id string) error
	CancelEdit()
	Draft() (*domain.ProductInput, string)
	Submit(ctx context.Context) (*domain.Product, error)
	AttachImage(ctx context.Context, data []byte, filename string) (string, error)
	Remove(ctx context.Context, id string) error
	ClearAll(ctx context.Context, confirmed bool) error
	Products(ctx context.Context) ([]domain.Product, error)
	Status(ctx context.Context) *StoreStatus
}

// CatalogUC — витрина: read-only срез текущего каталога.
type CatalogUC interface {
	Run(ctx context.Context)
	Snapshot() ([]domain.Product, CatalogState)
}
