package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wildink/internal/domain"
	"github.com/Gunvolt24/wildink/internal/ports"
)

var _ ports.ItemValidator = (*ItemValidator)(nil)

// ErrInvalidItem — базовая ошибка валидации товара каталога.
var ErrInvalidItem = errors.New("catalog item validation failed")

// ItemValidator — проверка товара из снапшота или ответа провайдера.
type ItemValidator struct{}

func NewItemValidator() *ItemValidator { return &ItemValidator{} }

// Validate — id и title обязательны, цена неотрицательна,
// цена до скидки (если задана) строго больше текущей.
func (v *ItemValidator) Validate(_ context.Context, item *domain.Item) error {
	if item == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidItem)
	}
	if item.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidItem)
	}
	if item.Title == "" {
		return fmt.Errorf("%w: title обязателен (id=%s)", ErrInvalidItem, item.ID)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: price должен быть неотрицательным (id=%s)", ErrInvalidItem, item.ID)
	}
	if item.PreDiscountPrice != nil && !item.PreDiscountPrice.GreaterThan(item.Price) {
		return fmt.Errorf("%w: pre_discount_price должен быть больше price (id=%s)", ErrInvalidItem, item.ID)
	}
	return nil
}
