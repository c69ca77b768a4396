package converter

import (
	"github.com/radhe-vastra/storefront-backend/internal/domain"
)

// ProductConverter преобразует сущности Product между внутренним
// соглашением об именах (domain) и соглашением хранилища (PostgreSQL).
// Преобразования взаимно обратны: ToEntity(ToModel(x)) == x.
// Необязательные поля проходят как есть (nil остаётся nil),
// размеры конвертируются поэлементно с сохранением порядка.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []*ProductModel) []domain.Product
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:              entity.ID,
		Title:           entity.Title,
		Price:           entity.Price,
		OldPrice:        entity.OldPrice,
		DiscountPercent: entity.DiscountPercent,
		WowPrice:        entity.WowPrice,
		Offers:          entity.Offers,
		Type:            entity.Type,
		Description:     entity.Description,
		Sizes:           entity.Sizes,
		Image:           entity.Image,
		CreatedAt:       entity.CreatedAt,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:              model.ID,
		Title:           model.Title,
		Price:           model.Price,
		OldPrice:        model.OldPrice,
		DiscountPercent: model.DiscountPercent,
		WowPrice:        model.WowPrice,
		Offers:          model.Offers,
		Type:            model.Type,
		Description:     model.Description,
		Sizes:           model.Sizes,
		Image:           model.Image,
		CreatedAt:       model.CreatedAt,
	}
}

func (c *ProductConverterImpl) ToArrEntity(models []*ProductModel) []domain.Product {
	entities := make([]domain.Product, 0, len(models))
	for _, model := range models {
		entities = append(entities, *c.ToEntity(model))
	}

	return entities
}
