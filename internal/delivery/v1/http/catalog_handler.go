package http

import (
	"net/http"

	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
)

// CatalogHandler отдаёт витрину: read-only срез каталога.
type CatalogHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, logger: logger}
}

type catalogResponse struct {
	State    usecase.CatalogState `json:"state"`
	Products []productResponse    `json:"products"`
}

// listProducts возвращает текущий срез каталога вместе с его состоянием:
// «ещё грузится» и «пусто» различимы для клиента.
func (c *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, state := c.catalogUC.Snapshot()

	WriteSuccess(w, http.StatusOK, catalogResponse{
		State:    state,
		Products: toProductResponses(products),
	})
}
