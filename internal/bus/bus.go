// Package bus реализует внутрипроцессное оповещение об изменениях каталога.
// Поверхности приложения не ссылаются друг на друга: админка публикует
// сигнал без полезной нагрузки, подписчики перечитывают данные сами.
package bus

import (
	evbus "github.com/asaskevich/EventBus"
)

const topicProductsChanged = "products.changed"

// ProductsBus — широковещательный канал «продукты изменились».
type ProductsBus struct {
	bus evbus.Bus
}

func NewProductsBus() *ProductsBus {
	return &ProductsBus{bus: evbus.New()}
}

// Subscribe регистрирует обработчик. Обработчики вызываются синхронно,
// в порядке регистрации, по одному разу на каждый Publish.
func (b *ProductsBus) Subscribe(fn func()) error {
	return b.bus.Subscribe(topicProductsChanged, fn)
}

// Unsubscribe снимает регистрацию обработчика.
// Снятие незарегистрированного обработчика не является ошибкой.
func (b *ProductsBus) Unsubscribe(fn func()) {
	_ = b.bus.Unsubscribe(topicProductsChanged, fn)
}

// Publish рассылает сигнал всем текущим подписчикам.
// Отсутствие подписчиков допустимо.
func (b *ProductsBus) Publish() {
	b.bus.Publish(topicProductsChanged)
}
