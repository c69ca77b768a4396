package usecase

import (
	"context"
	"encoding/base64"
	"net/http"
	"sync"

	"github.com/radhe-vastra/storefront-backend/internal/bus"
	"github.com/radhe-vastra/storefront-backend/internal/domain"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

// AdminUsecase владеет черновиком продукта и проводит мутации через шлюз.
// Черновик — единственная изменяемая запись с явным необязательным
// идентификатором цели редактирования; отдельных флагов состояния нет.
type AdminUsecase struct {
	store    ProductStore
	assets   AssetStore          // nil для локального бэкенда
	checker  AvailabilityChecker // nil, если бэкенд не умеет пробу
	notifier *bus.ProductsBus
	logger   logger.Logger

	mu        sync.Mutex
	draft     domain.ProductInput
	editingID string
	inFlight  bool
}

var _ AdminUC = (*AdminUsecase)(nil)

func NewAdminUC(
	store ProductStore,
	assets AssetStore,
	checker AvailabilityChecker,
	notifier *bus.ProductsBus,
	logger logger.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		store:    store,
		assets:   assets,
		checker:  checker,
		notifier: notifier,
		logger:   logger,
	}
}

// SetDraft заменяет редактируемые поля черновика.
// Цель редактирования при этом сохраняется.
func (a *AdminUsecase) SetDraft(input *domain.ProductInput) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft = *input
}

// BeginEdit загружает поля существующего продукта в черновик и запоминает
// его id как цель редактирования.
func (a *AdminUsecase) BeginEdit(ctx context.Context, id string) error {
	products, err := a.store.List(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	for i := range products {
		if products[i].ID == id {
			a.mu.Lock()
			a.draft = *products[i].Input()
			a.editingID = id
			a.mu.Unlock()
			return nil
		}
	}

	return e.ErrProductNotFound
}

// CancelEdit отбрасывает черновик без побочных эффектов.
func (a *AdminUsecase) CancelEdit() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft = domain.ProductInput{}
	a.editingID = ""
}

// Draft возвращает копию черновика и текущую цель редактирования.
func (a *AdminUsecase) Draft() (*domain.ProductInput, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	draft := a.draft
	return &draft, a.editingID
}

// Submit проводит черновик через гейт валидации и сохраняет его.
// При цели редактирования выполняется update, иначе create.
// Успех: черновик сброшен, цель снята, опубликован ровно один сигнал.
// Отказ валидации: ни одного обращения к хранилищу и ни одного сигнала.
// Ошибка хранилища: черновик сохранён для повторной попытки, сигнала нет.
func (a *AdminUsecase) Submit(ctx context.Context) (*domain.Product, error) {
	a.mu.Lock()
	draft := a.draft
	editingID := a.editingID
	a.mu.Unlock()

	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.end()

	var (
		saved *domain.Product
		err   error
	)
	if editingID != "" {
		saved, err = a.store.Update(ctx, editingID, &draft)
	} else {
		saved, err = a.store.Create(ctx, &draft)
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	a.mu.Lock()
	a.draft = domain.ProductInput{}
	a.editingID = ""
	a.mu.Unlock()

	a.notifier.Publish()
	return saved, nil
}

// AttachImage подготавливает изображение для черновика.
// Локальный бэкенд инлайнит его как data-URI, удалённый — загружает в бакет.
// Поле image черновика меняется только после того, как загрузка завершилась.
func (a *AdminUsecase) AttachImage(ctx context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", e.ErrNoFile
	}

	var image string
	if a.assets == nil {
		mimeType := http.DetectContentType(data)
		image = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	} else {
		if err := a.begin(); err != nil {
			return "", err
		}

		url, err := a.assets.Upload(ctx, data, filename)
		a.end()
		if err != nil {
			return "", e.Wrap(whereami.WhereAmI(), err)
		}
		image = url
	}

	a.mu.Lock()
	a.draft.Image = image
	a.mu.Unlock()

	return image, nil
}

// Remove удаляет продукт. Удаление продукта, открытого на редактирование,
// дополнительно отменяет редактирование.
func (a *AdminUsecase) Remove(ctx context.Context, id string) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	if err := a.store.Delete(ctx, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	a.mu.Lock()
	if a.editingID == id {
		a.draft = domain.ProductInput{}
		a.editingID = ""
	}
	a.mu.Unlock()

	a.notifier.Publish()
	return nil
}

// ClearAll удаляет все продукты. Требует явного подтверждения.
func (a *AdminUsecase) ClearAll(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return e.ErrConfirmationRequired
	}

	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	if err := a.store.ClearAll(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	a.CancelEdit()
	a.notifier.Publish()
	return nil
}

// Products возвращает управленческий список продуктов админки.
func (a *AdminUsecase) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := a.store.List(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}

// Status возвращает результат пробы доступности хранилища.
func (a *AdminUsecase) Status(ctx context.Context) *StoreStatus {
	if a.checker == nil {
		return NewStoreStatus(true, "")
	}

	return a.checker.CheckAvailability(ctx)
}

// begin помечает мутацию как выполняющуюся. Пока она не завершена,
// любая следующая мутация с этой поверхности отклоняется.
func (a *AdminUsecase) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight {
		return e.ErrOperationInFlight
	}
	a.inFlight = true
	return nil
}

func (a *AdminUsecase) end() {
	a.mu.Lock()
	a.inFlight = false
	a.mu.Unlock()
}
