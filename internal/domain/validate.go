package domain

import (
	"strings"

	"github.com/radhe-vastra/storefront-backend/pkg/e"
)

// Normalize приводит черновик к каноничному виду: обрезает пробелы
// и убирает повторы размеров, сохраняя порядок добавления.
func (in *ProductInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.TrimSpace(in.Type)

	seen := make(map[string]struct{}, len(in.Sizes))
	sizes := make([]string, 0, len(in.Sizes))
	for _, s := range in.Sizes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sizes = append(sizes, s)
	}
	in.Sizes = sizes
}

// Validate проверяет черновик перед обращением к хранилищу.
// Нарушение любого правила означает, что запись не должна быть сохранена.
func (in *ProductInput) Validate() error {
	if in.Title == "" {
		return e.ErrTitleRequired
	}
	if in.Price < 0 {
		return e.ErrInvalidPrice
	}
	if in.Description == "" {
		return e.ErrDescriptionRequired
	}
	if len(in.Sizes) == 0 {
		return e.ErrNoSizes
	}
	if in.Image == "" {
		return e.ErrNoImage
	}

	return nil
}
