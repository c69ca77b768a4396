package http

import (
	"github.com/radhe-vastra/storefront-backend/internal/cfg"
	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(adminUC usecase.AdminUC, catalogUC usecase.CatalogUC, adminCfg *cfg.AdminCfg) {
	r.router.Route("/api/v1", func(v1 chi.Router) {
		catalogHandler := NewCatalogHandler(catalogUC, r.logger)
		v1.Get("/products", catalogHandler.listProducts)

		adminHandler := NewAdminHandler(adminUC, r.logger)
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(PassphraseGate(adminCfg.Passphrase))
			registerAdminRoutes(admin, adminHandler)
		})
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler) {
	router.Get("/status", h.storeStatus)
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Post("/", h.createProduct)
		pr.Put("/{id}", h.updateProduct)
		pr.Delete("/{id}", h.deleteProduct)
		pr.Post("/clear", h.clearAll)
	})
	router.Post("/images", h.uploadImage)
}
