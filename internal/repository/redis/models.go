package redis

import (
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/domain"
)

// productCacheModel — продукт в кэше Redis.
// Сериализуется в JSON в соглашении хранилища (snake_case).
type productCacheModel struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Price           int64     `json:"price"`
	OldPrice        *int64    `json:"old_price,omitempty"`
	DiscountPercent *int64    `json:"discount_percent,omitempty"`
	WowPrice        *int64    `json:"wow_price,omitempty"`
	Offers          string    `json:"offers,omitempty"`
	Type            string    `json:"type,omitempty"`
	Description     string    `json:"description"`
	Sizes           []string  `json:"sizes"`
	Image           string    `json:"image"`
	CreatedAt       time.Time `json:"created_at"`
}

func toCacheModels(products []domain.Product) []productCacheModel {
	models := make([]productCacheModel, 0, len(products))
	for i := range products {
		p := &products[i]
		models = append(models, productCacheModel{
			ID:              p.ID,
			Title:           p.Title,
			Price:           p.Price,
			OldPrice:        p.OldPrice,
			DiscountPercent: p.DiscountPercent,
			WowPrice:        p.WowPrice,
			Offers:          p.Offers,
			Type:            p.Type,
			Description:     p.Description,
			Sizes:           p.Sizes,
			Image:           p.Image,
			CreatedAt:       p.CreatedAt,
		})
	}

	return models
}

func toEntities(models []productCacheModel) []domain.Product {
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		m := &models[i]
		products = append(products, domain.Product{
			ID:              m.ID,
			Title:           m.Title,
			Price:           m.Price,
			OldPrice:        m.OldPrice,
			DiscountPercent: m.DiscountPercent,
			WowPrice:        m.WowPrice,
			Offers:          m.Offers,
			Type:            m.Type,
			Description:     m.Description,
			Sizes:           m.Sizes,
			Image:           m.Image,
			CreatedAt:       m.CreatedAt,
		})
	}

	return products
}
