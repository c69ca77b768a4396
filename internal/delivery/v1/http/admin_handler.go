package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// AdminHandler проводит мутации каталога через админ-поверхность.
type AdminHandler struct {
	adminUC usecase.AdminUC
	logger  logger.Logger
}

func NewAdminHandler(adminUC usecase.AdminUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{adminUC: adminUC, logger: logger}
}

func (a *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.adminUC.Products(r.Context())
	if err != nil {
		a.logger.Warnf("admin list failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

func (a *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.logger.Warnf("%d bad product payload: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	a.adminUC.SetDraft(payload.toInput())
	saved, err := a.adminUC.Submit(r.Context())
	if err != nil {
		a.logger.Warnf("create product failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(saved))
}

func (a *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.logger.Warnf("%d bad product payload: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	if err := a.adminUC.BeginEdit(r.Context(), id); err != nil {
		a.logger.Warnf("edit target %s: %v", id, err)
		WriteError(w, err)
		return
	}

	a.adminUC.SetDraft(payload.toInput())
	saved, err := a.adminUC.Submit(r.Context())
	if err != nil {
		a.logger.Warnf("update product %s failed: %v", id, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(saved))
}

func (a *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.adminUC.Remove(r.Context(), id); err != nil {
		a.logger.Warnf("delete product %s failed: %v", id, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

type clearAllRequest struct {
	Confirm bool `json:"confirm"`
}

// clearAll требует явного подтверждения в теле запроса.
func (a *AdminHandler) clearAll(w http.ResponseWriter, r *http.Request) {
	var req clearAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Warnf("%d bad clear request: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	if err := a.adminUC.ClearAll(r.Context(), req.Confirm); err != nil {
		a.logger.Warnf("clear all failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"cleared": true})
}

// uploadImage принимает изображение как multipart/form-data (поле image)
// и возвращает значение для поля image черновика: публичный URL
// у удалённого бэкенда, data-URI у локального.
func (a *AdminHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 3 << 20
		maxMemory           = 2 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrExpectedMultipart.Error(), r.Header.Get("Content-Type"))
		WriteError(w, e.ErrExpectedMultipart)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, e.ErrNoFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, e.Wrap(whereami.WhereAmI(), err))
		return
	}

	image, err := a.adminUC.AttachImage(r.Context(), data, header.Filename)
	if err != nil {
		a.logger.Warnf("image upload failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"image": image})
}

func (a *AdminHandler) storeStatus(w http.ResponseWriter, r *http.Request) {
	status := a.adminUC.Status(r.Context())

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"available": status.Available,
		"message":   status.Message,
	})
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}
