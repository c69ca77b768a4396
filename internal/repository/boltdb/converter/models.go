package converter

import "time"

// ProductRecord — запись в локальном bbolt-хранилище.
// Сериализуется в JSON во внутреннем соглашении об именах (camelCase),
// как и весь остальной код вне слоя хранения.
type ProductRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Price           int64     `json:"price"`
	OldPrice        *int64    `json:"oldPrice,omitempty"`
	DiscountPercent *int64    `json:"discountPercent,omitempty"`
	WowPrice        *int64    `json:"wowPrice,omitempty"`
	Offers          string    `json:"offers,omitempty"`
	Type            string    `json:"type,omitempty"`
	Description     string    `json:"description"`
	Sizes           []string  `json:"sizes"`
	Image           string    `json:"image"`
	CreatedAt       time.Time `json:"createdAt"`
}
