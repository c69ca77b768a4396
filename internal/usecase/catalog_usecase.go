package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/bus"
	"github.com/radhe-vastra/storefront-backend/internal/domain"
	"github.com/radhe-vastra/storefront-backend/pkg/jitter"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
)

// CatalogUsecase держит актуальный срез каталога для витрины.
// Срез перечитывается целиком: по сигналу шины после мутаций админки
// и по таймеру — страховка от записей, которые шина не видит
// (например, другой экземпляр пишет в общий удалённый бэкенд).
type CatalogUsecase struct {
	store    ProductStore
	notifier *bus.ProductsBus
	logger   logger.Logger
	interval time.Duration

	reloadCh chan struct{}

	mu       sync.Mutex
	products []domain.Product
	loaded   bool
}

var _ CatalogUC = (*CatalogUsecase)(nil)

func NewCatalogUC(store ProductStore, notifier *bus.ProductsBus, interval time.Duration, logger logger.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		store:    store,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		reloadCh: make(chan struct{}, 1),
	}
}

// Run загружает каталог, подписывается на шину и запускает фоновую
// перезагрузку. Блокируется до отмены контекста; при выходе снимает
// подписку и останавливает таймер.
func (c *CatalogUsecase) Run(ctx context.Context) {
	c.reload(ctx)

	handler := func() {
		// Сигнал без полезной нагрузки: перечитать, а не доверять переданному
		select {
		case c.reloadCh <- struct{}{}:
		default:
		}
	}
	if err := c.notifier.Subscribe(handler); err != nil {
		c.logger.Errorf(err, "catalog: failed to subscribe to products bus")
	}
	defer c.notifier.Unsubscribe(handler)

	timer := time.NewTimer(jitter.Duration(c.interval, jitter.DefaultJitter))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.reloadCh:
			c.reload(ctx)
		case <-timer.C:
			c.reload(ctx)
			timer.Reset(jitter.Duration(c.interval, jitter.DefaultJitter))
		}
	}
}

// Snapshot возвращает текущий срез каталога и его состояние.
// «Пока пусто» и «ещё не загружено» различимы.
func (c *CatalogUsecase) Snapshot() ([]domain.Product, CatalogState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case !c.loaded:
		return nil, CatalogLoading
	case len(c.products) == 0:
		return []domain.Product{}, CatalogEmpty
	default:
		products := make([]domain.Product, len(c.products))
		copy(products, c.products)
		return products, CatalogReady
	}
}

// reload перечитывает каталог целиком. Ошибка чтения деградирует
// к предыдущему срезу, а не блокирует витрину.
func (c *CatalogUsecase) reload(ctx context.Context) {
	products, err := c.store.List(ctx)
	if err != nil {
		c.logger.Warnf("catalog reload failed: %v", err)
		return
	}

	c.mu.Lock()
	c.products = products
	c.loaded = true
	c.mu.Unlock()
}
