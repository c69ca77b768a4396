package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
// Имена полей следуют соглашению хранилища (snake_case).
type ProductModel struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	Price           int64     `db:"price"`
	OldPrice        *int64    `db:"old_price"`
	DiscountPercent *int64    `db:"discount_percent"`
	WowPrice        *int64    `db:"wow_price"`
	Offers          string    `db:"offers"`
	Type            string    `db:"type"`
	Description     string    `db:"description"`
	Sizes           []string  `db:"sizes"`
	Image           string    `db:"image"`
	CreatedAt       time.Time `db:"created_at"`
}
