package converter

import (
	"github.com/radhe-vastra/storefront-backend/internal/domain"
)

// ProductConverter преобразует сущности Product между domain и записью bbolt.
type ProductConverter interface {
	ToRecord(entity *domain.Product) *ProductRecord
	ToEntity(record *ProductRecord) *domain.Product
	ToArrEntity(records []ProductRecord) []domain.Product
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToRecord(entity *domain.Product) *ProductRecord {
	if entity == nil {
		return nil
	}

	return &ProductRecord{
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

func (c *ProductConverterImpl) ToEntity(record *ProductRecord) *domain.Product {
	if record == nil {
		return nil
	}

	return &domain.Product{
		ID:              record.ID,
		Title:           record.Title,
		Price:           record.Price,
		OldPrice:        record.OldPrice,
		DiscountPercent: record.DiscountPercent,
		WowPrice:        record.WowPrice,
		Offers:          record.Offers,
		Type:            record.Type,
		Description:     record.Description,
		Sizes:           record.Sizes,
		Image:           record.Image,
		CreatedAt:       record.CreatedAt,
	}
}

func (c *ProductConverterImpl) ToArrEntity(records []ProductRecord) []domain.Product {
	entities := make([]domain.Product, 0, len(records))
	for i := range records {
		entities = append(entities, *c.ToEntity(&records[i]))
	}

	return entities
}
