package domain

import "time"

// Product описывает позицию каталога.
type Product struct {
	ID              string
	Title           string
	Price           int64  // Цена хранится в минимальных единицах валюты
	OldPrice        *int64 // Прежняя цена, только для зачёркнутого отображения
	DiscountPercent *int64 // Отображаемый процент скидки, не выводится из цен
	WowPrice        *int64
	Offers          string
	Type            string
	Description     string
	Sizes           []string
	Image           string // data-URI либо URL загруженного объекта
	CreatedAt       time.Time
}

// ProductInput — продукт без идентификатора и временной метки:
// их назначает хранилище при создании.
type ProductInput struct {
	Title           string
	Price           int64
	OldPrice        *int64
	DiscountPercent *int64
	WowPrice        *int64
	Offers          string
	Type            string
	Description     string
	Sizes           []string
	Image           string
}

func NewProduct(input *ProductInput, id string, createdAt time.Time) *Product {
	return &Product{
		ID:              id,
		Title:           input.Title,
		Price:           input.Price,
		OldPrice:        input.OldPrice,
		DiscountPercent: input.DiscountPercent,
		WowPrice:        input.WowPrice,
		Offers:          input.Offers,
		Type:            input.Type,
		Description:     input.Description,
		Sizes:           input.Sizes,
		Image:           input.Image,
		CreatedAt:       createdAt,
	}
}

// Input возвращает редактируемую часть продукта, например для загрузки в черновик.
func (p *Product) Input() *ProductInput {
	return &ProductInput{
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
	}
}
