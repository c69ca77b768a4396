package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/bus"
	"github.com/radhe-vastra/storefront-backend/internal/cfg"
	"github.com/radhe-vastra/storefront-backend/internal/repository/boltdb"
	"github.com/radhe-vastra/storefront-backend/internal/repository/boltdb/converter"
	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
)

const testPassphrase = "opensesame"

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

// newTestServer поднимает полный стек поверх локального bbolt-бэкенда.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := boltdb.Open(filepath.Join(t.TempDir(), "products.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := boltdb.NewProductRepo(db, converter.NewProductConverterImpl(), nopLogger{})
	notifier := bus.NewProductsBus()
	adminUC := usecase.NewAdminUC(repo, nil, repo, notifier, nopLogger{})
	catalogUC := usecase.NewCatalogUC(repo, notifier, time.Hour, nopLogger{})

	mux := chi.NewRouter()
	NewRouter(mux, nopLogger{}).Init(adminUC, catalogUC, &cfg.AdminCfg{Passphrase: testPassphrase})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func adminRequest(t *testing.T, srv *httptest.Server, method, path, body string) *nethttp.Response {
	t.Helper()

	req, err := nethttp.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set(passphraseHeader, testPassphrase)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeProduct(t *testing.T, resp *nethttp.Response) productResponse {
	t.Helper()

	var product productResponse
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	return product
}

const validProductBody = `{
	"title": "Silk Saree",
	"price": "4999.50",
	"oldPrice": 5999,
	"description": "Handwoven silk",
	"sizes": ["Free Size"],
	"image": "data:image/png;base64,xyz"
}`

func TestCatalogIsOpenWithoutPassphrase(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/v1/products")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("catalog must not require the passphrase, got %d", resp.StatusCode)
	}

	var catalog catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if catalog.State != usecase.CatalogLoading {
		t.Fatalf("catalog state before the first load: %q", catalog.State)
	}
}

func TestAdminRejectsMissingOrWrongPassphrase(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/v1/admin/products/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("missing passphrase: want 401, got %d", resp.StatusCode)
	}

	req, _ := nethttp.NewRequest(nethttp.MethodGet, srv.URL+"/api/v1/admin/products/", nil)
	req.Header.Set(passphraseHeader, "guessed")
	resp, err = srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("wrong passphrase: want 401, got %d", resp.StatusCode)
	}
}

func TestCreateProduct(t *testing.T) {
	srv := newTestServer(t)

	resp := adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/products/", validProductBody)
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}

	product := decodeProduct(t, resp)
	if !strings.HasPrefix(product.ID, "product_") {
		t.Fatalf("local store id shape: %q", product.ID)
	}
	if int64(product.Price) != 499950 {
		t.Fatalf("price in minor units: %d", product.Price)
	}
	if product.CreatedAt.IsZero() {
		t.Fatalf("createdAt must be set")
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	srv := newTestServer(t)

	body := `{"title": "Tee", "price": 499, "description": "d", "sizes": [], "image": "img"}`
	resp := adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/products/", body)
	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("empty sizes: want 400, got %d", resp.StatusCode)
	}

	// отклонённый черновик не должен попасть в каталог
	list := adminRequest(t, srv, nethttp.MethodGet, "/api/v1/admin/products/", "")
	var products []productResponse
	if err := json.NewDecoder(list.Body).Decode(&products); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("rejected draft persisted: %v", products)
	}
}

func TestUpdateProduct(t *testing.T) {
	srv := newTestServer(t)

	created := decodeProduct(t, adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/products/", validProductBody))

	body := `{
		"title": "Silk Saree (festive)",
		"price": 5499,
		"description": "Handwoven silk",
		"sizes": ["Free Size"],
		"image": "data:image/png;base64,xyz"
	}`
	resp := adminRequest(t, srv, nethttp.MethodPut, "/api/v1/admin/products/"+created.ID, body)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("update: want 200, got %d", resp.StatusCode)
	}

	updated := decodeProduct(t, resp)
	if updated.ID != created.ID {
		t.Fatalf("update must preserve identity: %q vs %q", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update must preserve createdAt")
	}
	if updated.Title != "Silk Saree (festive)" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	srv := newTestServer(t)

	resp := adminRequest(t, srv, nethttp.MethodPut, "/api/v1/admin/products/product_0_missing", validProductBody)
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestDeleteProduct(t *testing.T) {
	srv := newTestServer(t)

	created := decodeProduct(t, adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/products/", validProductBody))

	resp := adminRequest(t, srv, nethttp.MethodDelete, "/api/v1/admin/products/"+created.ID, "")
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("delete: want 200, got %d", resp.StatusCode)
	}

	list := adminRequest(t, srv, nethttp.MethodGet, "/api/v1/admin/products/", "")
	var products []productResponse
	if err := json.NewDecoder(list.Body).Decode(&products); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("product survived delete: %v", products)
	}
}

func TestClearAllRequiresConfirm(t *testing.T) {
	srv := newTestServer(t)
	adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/products/", validProductBody)

	resp := adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/products/clear", `{"confirm": false}`)
	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("unconfirmed clear: want 400, got %d", resp.StatusCode)
	}

	resp = adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/products/clear", `{"confirm": true}`)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("confirmed clear: want 200, got %d", resp.StatusCode)
	}

	list := adminRequest(t, srv, nethttp.MethodGet, "/api/v1/admin/products/", "")
	var products []productResponse
	if err := json.NewDecoder(list.Body).Decode(&products); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("catalog not emptied: %v", products)
	}
}

func TestUploadImageRejectsNonMultipart(t *testing.T) {
	srv := newTestServer(t)

	resp := adminRequest(t, srv, nethttp.MethodPost, "/api/v1/admin/images", `{"image": "..."}`)
	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("json body on the image endpoint: want 400, got %d", resp.StatusCode)
	}
}

func TestUploadImageLocalBackendReturnsDataURI(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	// минимальная PNG-сигнатура, достаточная для DetectContentType
	if _, err := fw.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}); err != nil {
		t.Fatalf("write: %v", err)
	}
	mw.Close()

	req, _ := nethttp.NewRequest(nethttp.MethodPost, srv.URL+"/api/v1/admin/images", &buf)
	req.Header.Set(passphraseHeader, testPassphrase)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("upload: want 201, got %d", resp.StatusCode)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out["image"], "data:image/png;base64,") {
		t.Fatalf("local backend must inline the image: %q", out["image"])
	}
}

func TestStoreStatus(t *testing.T) {
	srv := newTestServer(t)

	resp := adminRequest(t, srv, nethttp.MethodGet, "/api/v1/admin/status", "")
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status: want 200, got %d", resp.StatusCode)
	}

	var out struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Available {
		t.Fatalf("local store must report available")
	}
}
