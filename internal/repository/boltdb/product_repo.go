package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/domain"
	"github.com/radhe-vastra/storefront-backend/internal/repository/boltdb/converter"
	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "storefront"
	productKey = "products"
)

// ProductRepo реализует локальный репозиторий продуктов поверх bbolt.
// Вся последовательность хранится в одном ключе и переписывается целиком
// при каждой мутации; предположение об отсутствии конкурирующих писателей
// обеспечивается транзакциями bbolt.
type ProductRepo struct {
	db     *bolt.DB
	conv   converter.ProductConverter
	logger logger.Logger
}

var (
	_ usecase.ProductStore        = (*ProductRepo)(nil)
	_ usecase.AvailabilityChecker = (*ProductRepo)(nil)
)

func NewProductRepo(db *bolt.DB, conv converter.ProductConverter, logger logger.Logger) *ProductRepo {
	return &ProductRepo{
		db:     db,
		conv:   conv,
		logger: logger,
	}
}

// Open открывает (или создаёт) файл хранилища вместе с его директорией.
func Open(path string) (*bolt.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// List возвращает продукты от новых к старым, как и удалённый бэкенд.
// Записи хранятся в порядке добавления, поэтому результат разворачивается.
// Отсутствующие или повреждённые данные означают пустой каталог, не ошибку.
func (p *ProductRepo) List(_ context.Context) ([]domain.Product, error) {
	var records []converter.ProductRecord
	err := p.db.View(func(tx *bolt.Tx) error {
		records = p.readAll(tx)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := p.conv.ToArrEntity(records)
	for i, j := 0, len(products)-1; i < j; i, j = i+1, j-1 {
		products[i], products[j] = products[j], products[i]
	}

	return products, nil
}

// Create сохраняет продукт, назначая ему id и временную метку.
func (p *ProductRepo) Create(_ context.Context, input *domain.ProductInput) (*domain.Product, error) {
	product := domain.NewProduct(input, newProductID(), time.Now().UTC())

	err := p.db.Update(func(tx *bolt.Tx) error {
		records := p.readAll(tx)
		records = append(records, *p.conv.ToRecord(product))
		return p.writeAll(tx, records)
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return product, nil
}

// Update заменяет все поля продукта, кроме id и временной метки создания.
func (p *ProductRepo) Update(_ context.Context, id string, input *domain.ProductInput) (*domain.Product, error) {
	var updated *domain.Product
	err := p.db.Update(func(tx *bolt.Tx) error {
		records := p.readAll(tx)
		for i := range records {
			if records[i].ID != id {
				continue
			}

			updated = domain.NewProduct(input, records[i].ID, records[i].CreatedAt)
			records[i] = *p.conv.ToRecord(updated)
			return p.writeAll(tx, records)
		}

		return e.ErrProductNotFound
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return updated, nil
}

// Delete удаляет продукт. Отсутствующий id не является ошибкой.
func (p *ProductRepo) Delete(_ context.Context, id string) error {
	err := p.db.Update(func(tx *bolt.Tx) error {
		records := p.readAll(tx)
		kept := records[:0]
		for i := range records {
			if records[i].ID != id {
				kept = append(kept, records[i])
			}
		}

		return p.writeAll(tx, kept)
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ClearAll удаляет все продукты.
func (p *ProductRepo) ClearAll(_ context.Context) error {
	err := p.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(productKey))
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// CheckAvailability для локального файла тривиальна: хранилище доступно,
// как только файл открыт.
func (p *ProductRepo) CheckAvailability(_ context.Context) *usecase.StoreStatus {
	return usecase.NewStoreStatus(true, "")
}

// readAll читает всю последовательность из единственного ключа.
// Повреждённый JSON трактуется как пустая последовательность.
func (p *ProductRepo) readAll(tx *bolt.Tx) []converter.ProductRecord {
	bucket := tx.Bucket([]byte(bucketName))
	if bucket == nil {
		return nil
	}

	data := bucket.Get([]byte(productKey))
	if data == nil {
		return nil
	}

	var records []converter.ProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		p.logger.Warnf("corrupted product data in local store, treating as empty: %v", err)
		return nil
	}

	return records
}

func (p *ProductRepo) writeAll(tx *bolt.Tx, records []converter.ProductRecord) error {
	bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
	if err != nil {
		return err
	}

	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	return bucket.Put([]byte(productKey), data)
}

// newProductID собирает id из временной метки и короткого случайного суффикса:
// практическая уникальность без какой-либо координации.
func newProductID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("product_%d_%s", time.Now().UnixMilli(), suffix)
}
