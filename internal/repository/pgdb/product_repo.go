package pgdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/domain"
	"github.com/radhe-vastra/storefront-backend/internal/repository/pgdb/converter"
	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// Код SQLSTATE «relation does not exist»: таблица products ещё не создана.
const undefinedTableCode = "42P01"

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
// Преобразование между внутренним соглашением и соглашением хранилища
// происходит на границе чтения/записи, остальной код видит только domain.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

var (
	_ usecase.ProductStore        = (*ProductRepo)(nil)
	_ usecase.AvailabilityChecker = (*ProductRepo)(nil)
)

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает продукты от новых к старым (created_at DESC).
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, price, old_price, discount_percent, wow_price,
		       offers, type, description, sizes, image, created_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapStoreError(err))
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Title, &model.Price, &model.OldPrice,
			&model.DiscountPercent, &model.WowPrice, &model.Offers, &model.Type,
			&model.Description, &model.Sizes, &model.Image, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapStoreError(err))
	}

	return p.conv.ToArrEntity(models), nil
}

// Create вставляет продукт; created_at назначает сервер БД.
func (p *ProductRepo) Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	query := `
		INSERT INTO products (id, title, price, old_price, discount_percent, wow_price,
		                      offers, type, description, sizes, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	model := p.conv.ToModel(domain.NewProduct(input, uuid.NewString(), time.Time{}))

	var createdAt time.Time
	err := p.pool.QueryRow(ctx, query,
		model.ID, model.Title, model.Price, model.OldPrice,
		model.DiscountPercent, model.WowPrice, model.Offers, model.Type,
		model.Description, model.Sizes, model.Image,
	).Scan(&createdAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), mapStoreError(err))
	}

	model.CreatedAt = createdAt
	return p.conv.ToEntity(model), nil
}

// Update заменяет все поля, кроме id и created_at.
func (p *ProductRepo) Update(ctx context.Context, id string, input *domain.ProductInput) (*domain.Product, error) {
	query := `
		UPDATE products
		SET title = $2, price = $3, old_price = $4, discount_percent = $5,
		    wow_price = $6, offers = $7, type = $8, description = $9,
		    sizes = $10, image = $11
		WHERE id = $1
		RETURNING created_at
	`

	model := p.conv.ToModel(domain.NewProduct(input, id, time.Time{}))

	var createdAt time.Time
	err := p.pool.QueryRow(ctx, query,
		model.ID, model.Title, model.Price, model.OldPrice,
		model.DiscountPercent, model.WowPrice, model.Offers, model.Type,
		model.Description, model.Sizes, model.Image,
	).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), mapStoreError(err))
	}

	model.CreatedAt = createdAt
	return p.conv.ToEntity(model), nil
}

// Delete идемпотентен: ноль затронутых строк — не ошибка.
func (p *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), mapStoreError(err))
	}

	return nil
}

// ClearAll удаляет все продукты.
func (p *ProductRepo) ClearAll(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM products`); err != nil {
		return e.Wrap(whereami.WhereAmI(), mapStoreError(err))
	}

	return nil
}

// CheckAvailability выполняет минимальную пробу чтения таблицы.
// Отсутствие таблицы отличается от прочих ошибок и сопровождается
// указанием, как это исправить. Никогда не возвращает ошибку.
func (p *ProductRepo) CheckAvailability(ctx context.Context) *usecase.StoreStatus {
	var id string
	err := p.pool.QueryRow(ctx, `SELECT id FROM products LIMIT 1`).Scan(&id)
	switch {
	case err == nil, errors.Is(err, pgx.ErrNoRows):
		return usecase.NewStoreStatus(true, "")
	case isUndefinedTable(err):
		return usecase.NewStoreStatus(false,
			fmt.Sprintf("products table does not exist: apply migrations from db/migrations to database %q", p.pool.Config().ConnConfig.Database))
	default:
		return usecase.NewStoreStatus(false, err.Error())
	}
}

// mapStoreError переводит «relation does not exist» в различимое
// состояние неинициализированного хранилища.
func mapStoreError(err error) error {
	if isUndefinedTable(err) {
		return e.Wrap(err.Error(), e.ErrStoreNotInitialized)
	}

	return err
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode
}
