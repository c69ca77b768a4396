package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/domain"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// Money — денежное поле во внутренних минимальных единицах.
// В JSON принимается и числом, и строкой ("599.99"), отдаётся числом.
type Money int64

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return e.ErrInvalidPrice
	}

	cents, err := parsePriceToCents(s)
	if err != nil {
		return err
	}

	*m = Money(cents)
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	units := decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(100))
	return []byte(units.String()), nil
}

// productPayload — редактируемые поля продукта на проводе.
// Имена полей следуют внутреннему соглашению (camelCase).
type productPayload struct {
	Title           string   `json:"title"`
	Price           Money    `json:"price"`
	OldPrice        *Money   `json:"oldPrice,omitempty"`
	DiscountPercent *int64   `json:"discountPercent,omitempty"`
	WowPrice        *Money   `json:"wowPrice,omitempty"`
	Offers          string   `json:"offers,omitempty"`
	Type            string   `json:"type,omitempty"`
	Description     string   `json:"description"`
	Sizes           []string `json:"sizes"`
	Image           string   `json:"image"`
}

type productResponse struct {
	ID string `json:"id"`
	productPayload
	CreatedAt time.Time `json:"createdAt"`
}

func (p *productPayload) toInput() *domain.ProductInput {
	return &domain.ProductInput{
		Title:           p.Title,
		Price:           int64(p.Price),
		OldPrice:        moneyToInt(p.OldPrice),
		DiscountPercent: p.DiscountPercent,
		WowPrice:        moneyToInt(p.WowPrice),
		Offers:          p.Offers,
		Type:            p.Type,
		Description:     p.Description,
		Sizes:           p.Sizes,
		Image:           p.Image,
	}
}

func toProductResponse(product *domain.Product) *productResponse {
	return &productResponse{
		ID: product.ID,
		productPayload: productPayload{
			Title:           product.Title,
			Price:           Money(product.Price),
			OldPrice:        intToMoney(product.OldPrice),
			DiscountPercent: product.DiscountPercent,
			WowPrice:        intToMoney(product.WowPrice),
			Offers:          product.Offers,
			Type:            product.Type,
			Description:     product.Description,
			Sizes:           product.Sizes,
			Image:           product.Image,
		},
		CreatedAt: product.CreatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	responses := make([]productResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *toProductResponse(&products[i]))
	}

	return responses
}

func moneyToInt(m *Money) *int64 {
	if m == nil {
		return nil
	}
	v := int64(*m)
	return &v
}

func intToMoney(v *int64) *Money {
	if v == nil {
		return nil
	}
	m := Money(*v)
	return &m
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrTitleRequired),
		errors.Is(err, e.ErrDescriptionRequired),
		errors.Is(err, e.ErrInvalidPrice),
		errors.Is(err, e.ErrPricePrecision),
		errors.Is(err, e.ErrNoSizes),
		errors.Is(err, e.ErrNoImage),
		errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrNoFile),
		errors.Is(err, e.ErrFileTooLarge),
		errors.Is(err, e.ErrUnsupportedMediaType),
		errors.Is(err, e.ErrConfirmationRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, e.ErrWrongPassphrase):
		return http.StatusUnauthorized, e.ErrWrongPassphrase.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrOperationInFlight):
		return http.StatusConflict, e.ErrOperationInFlight.Error()
	case errors.Is(err, e.ErrStoreNotInitialized):
		return http.StatusServiceUnavailable, err.Error()
	default:
		// Транспортные и неожиданные ошибки отдаются текстом как есть
		return http.StatusInternalServerError, err.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePriceToCents переводит строку вида "599.99" или "600" в минимальные
// единицы. Отклоняет отрицательные значения, более двух знаков после
// запятой и значения за разумным пределом.
func parsePriceToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
