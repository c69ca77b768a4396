package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/radhe-vastra/storefront-backend/internal/cfg"
	"github.com/radhe-vastra/storefront-backend/internal/domain"
	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/clients"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const listKey = "products:list"

// CachedProductStore — декоратор над ProductStore с кэшем списка в Redis.
// Любая мутация проходит в нижележащее хранилище и сбрасывает кэш.
// Ошибки кэша деградируют к прямому чтению и логируются, но не всплывают:
// кэш не авторитетен.
type CachedProductStore struct {
	inner  usecase.ProductStore
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

var _ usecase.ProductStore = (*CachedProductStore)(nil)

func NewCachedProductStore(inner usecase.ProductStore, client *clients.RedisClient,
	cfg *cfg.RedisCfg, logger logger.Logger) *CachedProductStore {
	return &CachedProductStore{
		inner:  inner,
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

func (c *CachedProductStore) List(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := c.getCached(ctx); ok {
		return cached, nil
	}

	products, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	c.setCached(ctx, products)
	return products, nil
}

func (c *CachedProductStore) Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	product, err := c.inner.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)
	return product, nil
}

func (c *CachedProductStore) Update(ctx context.Context, id string, input *domain.ProductInput) (*domain.Product, error) {
	product, err := c.inner.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx)
	return product, nil
}

func (c *CachedProductStore) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}

	c.invalidate(ctx)
	return nil
}

func (c *CachedProductStore) ClearAll(ctx context.Context) error {
	if err := c.inner.ClearAll(ctx); err != nil {
		return err
	}

	c.invalidate(ctx)
	return nil
}

// getCached возвращает закэшированный список; любой сбой — промах.
func (c *CachedProductStore) getCached(ctx context.Context) ([]domain.Product, bool) {
	data, err := c.client.Client.Get(ctx, listKey).Bytes()
	if err != nil {
		if !errors.Is(err, r.Nil) {
			c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, false
	}

	var models []productCacheModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.invalidate(ctx)
		return nil, false
	}

	return toEntities(models), true
}

func (c *CachedProductStore) setCached(ctx context.Context, products []domain.Product) {
	data, err := json.Marshal(toCacheModels(products))
	if err != nil {
		c.logger.Warnf("Failed to marshal product list for caching: %v", e.Wrap(whereami.WhereAmI(), err))
		return
	}

	if err := c.client.Client.Set(ctx, listKey, data, c.cfg.ListTTL).Err(); err != nil {
		c.logger.Warnf("Redis SET failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

func (c *CachedProductStore) invalidate(ctx context.Context) {
	if err := c.client.Client.Del(ctx, listKey).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}
